package repository

import "context"

// Notifier posts a message to an outbound notification channel.
// Delivery is fire-and-forget; failures are logged by the caller and
// never affect scheduling.
type Notifier interface {
	PostMessage(ctx context.Context, channelID, text string) error
}
