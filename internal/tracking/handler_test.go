package tracking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asman-store/backend/pkg/queue"
)

type fakeEnqueuer struct {
	events []queue.BannerEventPayload
	err    error
}

func (f *fakeEnqueuer) EnqueueBannerEvent(_ context.Context, payload queue.BannerEventPayload) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, payload)
	return nil
}

func newTestRouter(events *fakeEnqueuer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewHandler(events, "KG", nil)
	router.POST("/banners/:id/view", handler.View)
	router.POST("/banners/:id/click", handler.Click)
	return router
}

func doPost(router *gin.Engine, url string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, url, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestViewEnqueuesEvent(t *testing.T) {
	events := &fakeEnqueuer{}
	router := newTestRouter(events)
	id := uuid.New()

	w := doPost(router, "/banners/"+id.String()+"/view", nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", w.Code, w.Body.String())
	}
	if len(events.events) != 1 {
		t.Fatalf("expected 1 enqueued event, got %d", len(events.events))
	}
	got := events.events[0]
	if got.BannerID != id || got.Event != queue.BannerEventView {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if got.Market != "KG" {
		t.Fatalf("expected default market KG, got %q", got.Market)
	}
	if got.OccurredAt.IsZero() {
		t.Fatal("expected occurred_at to be set")
	}
}

func TestClickCarriesRequestMarket(t *testing.T) {
	events := &fakeEnqueuer{}
	router := newTestRouter(events)
	id := uuid.New()

	w := doPost(router, "/banners/"+id.String()+"/click", map[string]string{"X-Market": "us"})
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
	got := events.events[0]
	if got.Event != queue.BannerEventClick {
		t.Fatalf("expected click event, got %q", got.Event)
	}
	if got.Market != "US" {
		t.Fatalf("expected market US from header, got %q", got.Market)
	}
}

func TestInvalidBannerID(t *testing.T) {
	events := &fakeEnqueuer{}
	router := newTestRouter(events)

	w := doPost(router, "/banners/not-a-uuid/view", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", w.Code)
	}
	if len(events.events) != 0 {
		t.Fatal("nothing should be enqueued for a malformed id")
	}

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if body.Success || body.Error == "" {
		t.Fatalf("expected error envelope, got %s", w.Body.String())
	}
}

func TestEnqueueFailure(t *testing.T) {
	events := &fakeEnqueuer{err: errors.New("redis down")}
	router := newTestRouter(events)

	w := doPost(router, "/banners/"+uuid.New().String()+"/view", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 when enqueue fails, got %d", w.Code)
	}
}
