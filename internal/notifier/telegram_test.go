package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MarketPulse/internal/config"
)

func newTestNotifier(apiBase string) *TelegramNotifier {
	n := NewTelegramNotifier(config.Telegram{
		BotToken:  "TOKEN",
		ChatID:    "42",
		APIBase:   apiBase,
		ParseMode: "Markdown",
		Retries:   2,
	}, config.HTTP{}, zerolog.Nop())
	n.Backoff = time.Millisecond
	return n
}

func TestSend_PostsMarkdownMessage(t *testing.T) {
	var got map[string]string
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	require.NoError(t, newTestNotifier(srv.URL).Send(context.Background(), "*hello*"))
	assert.Equal(t, "/botTOKEN/sendMessage", path)
	assert.Equal(t, map[string]string{"chat_id": "42", "text": "*hello*", "parse_mode": "Markdown"}, got)
}

func TestSendWithRetry_RecoversAfterFailure(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	assert.True(t, newTestNotifier(srv.URL).Deliver(context.Background(), "report"))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDeliver_ReturnsFalseWhenExhausted(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"can't parse entities"}`))
	}))
	defer srv.Close()

	assert.False(t, newTestNotifier(srv.URL).Deliver(context.Background(), "report"))
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSend_ErrorDoesNotLeakToken(t *testing.T) {
	n := newTestNotifier("http://127.0.0.1:1")
	err := n.Send(context.Background(), "x")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "TOKEN")
}

func TestStartPolling_HandlesCommandsFromConfiguredChat(t *testing.T) {
	var mu sync.Mutex
	var replies []string
	var polls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if atomic.AddInt32(&polls, 1) == 1 {
				_, _ = w.Write([]byte(`{"ok":true,"result":[
					{"update_id":7,"message":{"text":"/help","chat":{"id":99}}},
					{"update_id":8,"message":{"text":" /help ","chat":{"id":42}}}
				]}`))
				return
			}
			assert.Equal(t, "9", r.URL.Query().Get("offset"))
			_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			mu.Lock()
			replies = append(replies, body["text"])
			mu.Unlock()
			_, _ = w.Write([]byte(`{"ok":true}`))
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var commands []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		newTestNotifier(srv.URL).StartPolling(ctx, func(_ context.Context, cmd string) string {
			commands = append(commands, cmd)
			return "pong"
		})
	}()

	require.Eventually(t, func() bool { return atomic.LoadInt32(&polls) >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, []string{"/help"}, commands)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"pong"}, replies)
}
