package fcm

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/calebgil/tandem/internal/push"
)

// Client wraps Firebase Cloud Messaging and implements push.Sender.
type Client struct {
	messaging *messaging.Client
}

var _ push.Sender = (*Client)(nil)

// NewClient initialises the Firebase app and messaging client. An empty
// credentials file falls back to application default credentials.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("fcm: initialise firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("fcm: messaging client: %w", err)
	}

	return &Client{messaging: client}, nil
}

// Send submits one multicast batch and maps the provider response onto
// per-token tickets. Tokens the provider reports as unregistered or malformed
// are flagged for registry cleanup.
func (c *Client) Send(ctx context.Context, tokens []string, payload push.Payload) ([]push.Ticket, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	response, err := c.messaging.SendEachForMulticast(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("fcm: multicast send: %w", err)
	}

	tickets := make([]push.Ticket, len(tokens))
	for i, resp := range response.Responses {
		ticket := push.Ticket{Token: tokens[i], OK: resp.Success}
		if !resp.Success {
			ticket.Err = resp.Error
			ticket.Unregistered = messaging.IsUnregistered(resp.Error) ||
				messaging.IsInvalidArgument(resp.Error)
		}
		tickets[i] = ticket
	}

	return tickets, nil
}
