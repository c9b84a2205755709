package notify

import "context"

// Pusher delivers a push notification to a device. Delivery is best
// effort: callers log failures and never propagate them.
type Pusher interface {
	Push(ctx context.Context, deviceToken, title, body string) error
}

// Mailer sends an HTML email. Same best-effort contract as Pusher.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
