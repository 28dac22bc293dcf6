package notifier

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"SignalSentry/internal/model"
)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

func testPosition() *model.Position {
	return &model.Position{
		ID:         "BTC_USDT_LONG_2024-03-01_12:15:00",
		Symbol:     "BTC_USDT",
		Direction:  model.Long,
		Entry:      100,
		StopLoss:   97.6,
		TP1:        101.8,
		TP2:        103.6,
		SignalTime: "2024-03-01 12:15:00",
		RiskReward: 1.5,
		Status:     model.StatusPending,
	}
}

func TestSignalOpenedDoesNotBlock(t *testing.T) {
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })

	n := &TelegramNotifier{
		BotToken:  "token",
		ChatID:    "chat",
		retryBase: time.Millisecond,
		Client: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			<-release
			return nil, errors.New("connection refused")
		})},
	}

	start := time.Now()
	n.SignalOpened(testPosition())
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("SignalOpened blocked for %v while delivery hung", elapsed)
	}
}

func TestDeliverSendsFormPayload(t *testing.T) {
	var mu sync.Mutex
	var gotPath, gotBody string

	n := &TelegramNotifier{
		BotToken:  "token",
		ChatID:    "chat",
		Decimals:  6,
		retryBase: time.Millisecond,
		Client: &http.Client{Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			mu.Lock()
			gotPath = req.URL.Path
			gotBody = string(body)
			mu.Unlock()
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"ok":true}`)),
			}, nil
		})},
	}

	n.deliver("signal", FormatSignalHTML(testPosition(), n.Decimals))

	mu.Lock()
	defer mu.Unlock()
	if gotPath != "/bottoken/sendMessage" {
		t.Errorf("path = %q, want /bottoken/sendMessage", gotPath)
	}
	if !strings.Contains(gotBody, "chat_id=chat") {
		t.Errorf("body missing chat_id: %q", gotBody)
	}
	if !strings.Contains(gotBody, "parse_mode=HTML") {
		t.Errorf("body missing parse_mode: %q", gotBody)
	}
	if !strings.Contains(gotBody, "BTC_USDT") {
		t.Errorf("body missing symbol: %q", gotBody)
	}
}

func TestDeliverRetriesThenGivesUp(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	n := &TelegramNotifier{
		BotToken:  "token",
		ChatID:    "chat",
		retryBase: time.Millisecond,
		Client: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			mu.Lock()
			attempts++
			mu.Unlock()
			return nil, errors.New("connection refused")
		})},
	}

	n.deliver("summary", "text")

	mu.Lock()
	defer mu.Unlock()
	if attempts != deliverAttempts {
		t.Errorf("attempts = %d, want %d", attempts, deliverAttempts)
	}
}

func TestDeliverRecoversOnRetry(t *testing.T) {
	var mu sync.Mutex
	attempts := 0

	n := &TelegramNotifier{
		BotToken:  "token",
		ChatID:    "chat",
		retryBase: time.Millisecond,
		Client: &http.Client{Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			mu.Lock()
			attempts++
			count := attempts
			mu.Unlock()
			if count < 3 {
				return &http.Response{
					StatusCode: http.StatusBadGateway,
					Body:       io.NopCloser(strings.NewReader("upstream error")),
				}, nil
			}
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"ok":true}`)),
			}, nil
		})},
	}

	n.deliver("signal", "text")

	mu.Lock()
	defer mu.Unlock()
	if attempts != 3 {
		t.Errorf("attempts = %d, want success on the third", attempts)
	}
}
