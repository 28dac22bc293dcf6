package notifier

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"SignalSentry/internal/model"
)

// deliverAttempts bounds how often one notification is retried before it is
// dropped.
const deliverAttempts = 4

// TelegramNotifier sends messages via the Telegram Bot API. Delivery happens
// on a goroutine per notification, so an outage slows nothing but the
// notification itself.
type TelegramNotifier struct {
	BotToken string
	ChatID   string
	Decimals int
	Client   *http.Client

	retryBase time.Duration
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID string, decimals int, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		Decimals: decimals,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		retryBase: time.Second,
	}
}

// sendMessage posts one message to the configured chat.
func (t *TelegramNotifier) sendMessage(ctx context.Context, text string) error {
	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", t.BotToken)
	form := url.Values{
		"chat_id":    {t.ChatID},
		"text":       {text},
		"parse_mode": {"HTML"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.Client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("telegram api: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// deliver pushes one rendered message with doubling backoff between attempts.
// Failures are logged and the message dropped; nothing propagates back to the
// scan pipeline.
func (t *TelegramNotifier) deliver(kind, text string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	backoff := t.retryBase
	if backoff <= 0 {
		backoff = time.Second
	}

	var lastErr error
	for attempt := 1; attempt <= deliverAttempts; attempt++ {
		if lastErr = t.sendMessage(ctx, text); lastErr == nil {
			return
		}
		if attempt == deliverAttempts {
			break
		}
		log.Printf("[WARN] telegram %s send (attempt %d/%d): %v, retrying in %v",
			kind, attempt, deliverAttempts, lastErr, backoff)
		select {
		case <-ctx.Done():
			log.Printf("[ERROR] telegram %s notification dropped: %v", kind, lastErr)
			return
		case <-time.After(backoff):
			backoff *= 2
		}
	}
	log.Printf("[ERROR] telegram %s notification dropped after %d attempts: %v",
		kind, deliverAttempts, lastErr)
}

// SignalOpened pushes the signal to the chat without blocking the caller.
func (t *TelegramNotifier) SignalOpened(pos *model.Position) {
	go t.deliver("signal", FormatSignalHTML(pos, t.Decimals))
}

// Summary pushes the statistics summary to the chat without blocking the
// caller.
func (t *TelegramNotifier) Summary(stats model.Stats) {
	go t.deliver("summary", FormatStatsHTML(stats))
}
