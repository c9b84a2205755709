package notify

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// FCMPusher sends push notifications through Firebase Cloud Messaging.
type FCMPusher struct {
	client *messaging.Client
}

func NewFCMPusher(ctx context.Context, credentialsFile string) (*FCMPusher, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to init fcm client: %w", err)
	}
	return &FCMPusher{client: client}, nil
}

func (p *FCMPusher) Push(ctx context.Context, deviceToken, title, body string) error {
	_, err := p.client.Send(ctx, &messaging.Message{
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Token: deviceToken,
	})
	return err
}
