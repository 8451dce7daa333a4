package notifier

import (
	"context"
	"errors"
	"fmt"

	"NepseSentinel/internal/store"

	"github.com/rs/zerolog"
)

// sendRetries bounds per-chat delivery attempts during a broadcast.
const sendRetries = 3

// Broadcaster fans one alert out to every registered subscriber.
type Broadcaster struct {
	Notifier *TelegramNotifier
	Registry store.Registry
	Log      zerolog.Logger
}

// Broadcast sends text to all subscribers. Chats that blocked the bot are
// unsubscribed; other per-chat failures are logged and skipped so one bad
// chat never stalls the rest.
func (b *Broadcaster) Broadcast(ctx context.Context, text string) error {
	ids, err := b.Registry.All()
	if err != nil {
		return fmt.Errorf("list subscribers: %w", err)
	}

	for _, id := range ids {
		err := b.Notifier.SendWithRetry(ctx, id, text, sendRetries)
		if errors.Is(err, ErrForbidden) {
			b.Log.Info().Int64("chat_id", id).Msg("chat blocked the bot, unsubscribing")
			if err := b.Registry.Remove(id); err != nil {
				b.Log.Error().Err(err).Int64("chat_id", id).Msg("remove subscriber")
			}
			continue
		}
		if err != nil {
			b.Log.Error().Err(err).Int64("chat_id", id).Msg("send alert")
		}
	}
	return nil
}
