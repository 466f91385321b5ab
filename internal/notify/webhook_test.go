package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tidwall/gjson"
)

func TestSendDeliversPayload(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		got = string(body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	w := New(srv.URL)
	err := w.Send(context.Background(), Alert{
		ProfileID:   "p1",
		ProfileName: "Kid",
		ContentType: "text",
		Confidence:  0.3,
		Reasons:     []string{"Violence-related: 'blood'"},
		Snippet:     "blood and gore",
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gjson.Get(got, "profile_name").Str != "Kid" {
		t.Fatalf("unexpected payload: %s", got)
	}
	if gjson.Get(got, "reasons.0").Str != "Violence-related: 'blood'" {
		t.Fatalf("unexpected reasons: %s", got)
	}
}

func TestSendRejectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if err := New(srv.URL).Send(context.Background(), Alert{}); err == nil {
		t.Fatal("expected error on 4xx response")
	}
}

func TestNewEmptyURL(t *testing.T) {
	if New("") != nil {
		t.Fatal("empty URL must yield a nil webhook")
	}
	// Dispatch on a nil webhook is a no-op, not a panic.
	var w *Webhook
	w.Dispatch(Alert{})
}
