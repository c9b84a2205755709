package logruspretty

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// PrettyHandler is a compact, colored logrus formatter for local
// development. Production environments use the plain text formatter.
type PrettyHandler struct {
	out io.Writer
}

func NewPrettyHandler(out io.Writer) *PrettyHandler {
	return &PrettyHandler{out: out}
}

func (h *PrettyHandler) Format(entry *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(entry.Time.Format("15:04:05.000"))
	buf.WriteByte(' ')
	buf.WriteString(colorize(entry.Level))

	if msg := strings.TrimSpace(entry.Message); msg != "" {
		buf.WriteByte(' ')
		buf.WriteString(msg)
	}

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&buf, " \x1b[90m%s=\x1b[0m%v", k, entry.Data[k])
	}

	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func colorize(level logrus.Level) string {
	name := strings.ToUpper(level.String())
	switch level {
	case logrus.DebugLevel:
		return "\x1b[35m" + name + "\x1b[0m"
	case logrus.InfoLevel:
		return "\x1b[36m" + name + "\x1b[0m"
	case logrus.WarnLevel:
		return "\x1b[33m" + name + "\x1b[0m"
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return "\x1b[31m" + name + "\x1b[0m"
	default:
		return name
	}
}
