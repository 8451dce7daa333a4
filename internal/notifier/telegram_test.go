package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"NepseSentinel/internal/store"

	"github.com/rs/zerolog"
)

type sentMessage struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

func testNotifier(apiBase string) *TelegramNotifier {
	tn := NewTelegramNotifier("TESTTOKEN", zerolog.Nop())
	tn.apiBase = apiBase
	return tn
}

func TestSend_PostsHTMLPayload(t *testing.T) {
	var got sentMessage
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTESTTOKEN/sendMessage" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	tn := testNotifier(ts.URL)
	if err := tn.Send(context.Background(), 42, "<b>hello</b>"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ChatID != 42 || got.Text != "<b>hello</b>" || got.ParseMode != "HTML" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestSend_ForbiddenMapsToSentinel(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	tn := testNotifier(ts.URL)
	err := tn.Send(context.Background(), 42, "hi")
	if !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestSendWithRetry_ForbiddenIsPermanent(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	tn := testNotifier(ts.URL)
	err := tn.SendWithRetry(context.Background(), 42, "hi", 3)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Errorf("expected no retries on forbidden, got %d calls", calls)
	}
}

func TestBroadcast_UnsubscribesBlockedChat(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var msg sentMessage
		if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if msg.ChatID == 1 {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	reg := store.NewMemoryRegistry()
	reg.Add(1)
	reg.Add(2)

	b := &Broadcaster{Notifier: testNotifier(ts.URL), Registry: reg, Log: zerolog.Nop()}
	if err := b.Broadcast(context.Background(), "alert"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids, err := reg.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(ids) != 1 || ids[0] != 2 {
		t.Errorf("expected blocked chat removed, got %v", ids)
	}
}
