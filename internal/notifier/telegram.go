// Package notifier delivers alerts and command replies over Telegram.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const defaultAPIBase = "https://api.telegram.org"

// ErrForbidden reports that a chat has blocked the bot. Broadcasters drop
// the subscription instead of retrying.
var ErrForbidden = errors.New("telegram: bot blocked by chat")

// TelegramNotifier sends messages via the Telegram Bot API. All outbound
// sends share one rate limiter kept under Telegram's global ceiling of 30
// messages per second.
type TelegramNotifier struct {
	botToken string
	apiBase  string
	client   *http.Client
	limiter  *rate.Limiter
	log      zerolog.Logger
}

// NewTelegramNotifier creates a notifier for the given bot token.
func NewTelegramNotifier(botToken string, log zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		botToken: botToken,
		apiBase:  defaultAPIBase,
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Every(50*time.Millisecond), 10),
		log:      log.With().Str("component", "telegram").Logger(),
	}
}

// Send sends one message to a chat, HTML parse mode.
func (t *TelegramNotifier) Send(ctx context.Context, chatID int64, text string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.botToken)
	payload := map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: chat %d", ErrForbidden, chatID)
	}
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// SendWithRetry sends a message with exponential backoff retry. ErrForbidden
// is permanent and returned immediately.
func (t *TelegramNotifier) SendWithRetry(ctx context.Context, chatID int64, text string, maxRetries int) error {
	var lastErr error
	for i := 0; i <= maxRetries; i++ {
		err := t.Send(ctx, chatID, text)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrForbidden) {
			return err
		}
		lastErr = err
		backoff := time.Duration(1<<uint(i)) * time.Second
		t.log.Warn().Err(err).Int("attempt", i+1).Int("max", maxRetries+1).Dur("backoff", backoff).
			Msg("telegram send failed, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("all %d retries exhausted: %w", maxRetries+1, lastErr)
}
