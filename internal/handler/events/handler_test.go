package events

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
	model "github.com/zhouzirui/restaurant-stars/backend/internal/model/starred"
	eventservice "github.com/zhouzirui/restaurant-stars/backend/internal/service/events"
	starredservice "github.com/zhouzirui/restaurant-stars/backend/internal/service/starred"
)

const trattoriaID = "8e9d2a1c-6f0b-4c3e-9a57-2b1f4d6c8e03"

func setupServer(t *testing.T) (*httptest.Server, *starredservice.Service) {
	t.Helper()
	hub := eventservice.NewHub(8)
	svc := starredservice.NewService(
		catalog.NewMemoryStore(catalog.Seed()),
		model.Seed(),
		starredservice.WithPublisher(hub),
	)

	r := chi.NewRouter()
	New(hub).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, svc
}

func readLine(t *testing.T, reader *bufio.Reader, prefix string) string {
	t.Helper()
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read sse line: %v", err)
		}
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix))
		}
	}
}

func TestSSEStreamsStarredEvents(t *testing.T) {
	srv, svc := setupServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/starred/events", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("connect sse: %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type: %s", ct)
	}

	reader := bufio.NewReader(resp.Body)
	readLine(t, reader, "data: ")

	if _, err := svc.Add(context.Background(), trattoriaID); err != nil {
		t.Fatalf("Add err: %v", err)
	}

	if got := readLine(t, reader, "event: "); got != eventservice.TypeAdded {
		t.Fatalf("expected %s, got %s", eventservice.TypeAdded, got)
	}

	var evt eventservice.Event
	if err := json.Unmarshal([]byte(readLine(t, reader, "data: ")), &evt); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if evt.RestaurantID != trattoriaID {
		t.Fatalf("unexpected restaurant: %s", evt.RestaurantID)
	}
}

func TestWebSocketStreamsStarredEvents(t *testing.T) {
	srv, svc := setupServer(t)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/starred"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var hello outgoingMessage
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read connected: %v", err)
	}
	if hello.Type != "connected" {
		t.Fatalf("expected connected message, got %s", hello.Type)
	}

	if err := svc.Delete(context.Background(), "a7272cd9-26fb-44b5-8d53-9781f55175a1"); err != nil {
		t.Fatalf("Delete err: %v", err)
	}

	var msg struct {
		Type string             `json:"type"`
		Data eventservice.Event `json:"data"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if msg.Type != eventservice.TypeDeleted {
		t.Fatalf("expected %s, got %s", eventservice.TypeDeleted, msg.Type)
	}
	if msg.Data.EntryID != "a7272cd9-26fb-44b5-8d53-9781f55175a1" {
		t.Fatalf("unexpected entry id: %s", msg.Data.EntryID)
	}
}
