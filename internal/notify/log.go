package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LogPusher and LogMailer stand in when FCM or SMTP credentials are not
// configured (local env): they log the would-be delivery and succeed.

type LogPusher struct {
	log *logrus.Entry
}

func NewLogPusher(log *logrus.Logger) *LogPusher {
	return &LogPusher{log: logrus.NewEntry(log)}
}

func (p *LogPusher) Push(_ context.Context, deviceToken, title, body string) error {
	p.log.WithFields(logrus.Fields{
		"device_token": deviceToken,
		"title":        title,
		"body":         body,
	}).Info("push notification (log only)")
	return nil
}

type LogMailer struct {
	log *logrus.Entry
}

func NewLogMailer(log *logrus.Logger) *LogMailer {
	return &LogMailer{log: logrus.NewEntry(log)}
}

func (m *LogMailer) Send(_ context.Context, to, subject, _ string) error {
	m.log.WithFields(logrus.Fields{
		"to":      to,
		"subject": subject,
	}).Info("email (log only)")
	return nil
}
