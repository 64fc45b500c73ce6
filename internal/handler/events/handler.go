package events

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	eventService "github.com/zhouzirui/restaurant-stars/backend/internal/service/events"
	"github.com/zhouzirui/restaurant-stars/backend/pkg/utils"
)

const (
	defaultHeartbeat = 15 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = 54 * time.Second
	writeWait        = 10 * time.Second
)

// Handler 将收藏变更事件推送给前端，支持SSE与WebSocket两种方式
type Handler struct {
	hub       *eventService.Hub
	upgrader  websocket.Upgrader
	heartbeat time.Duration
}

// New 创建事件处理器
func New(hub *eventService.Hub) *Handler {
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		heartbeat: defaultHeartbeat,
	}
}

// RegisterRoutes 注册事件相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/starred/events", h.handleSSE)
	r.Get("/ws/starred", h.handleWebSocket)
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// handleSSE 通过Server-Sent Events推送变更
func (h *Handler) handleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	events, cancel := h.hub.Subscribe()
	defer cancel()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	ctx := r.Context()
	log.Printf("[sse] subscriber connected remote=%s", r.RemoteAddr)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	utils.SendSSEChunk(w, flusher, map[string]any{
		"event":   "status",
		"message": "stream established",
	})

	for {
		select {
		case <-ctx.Done():
			log.Printf("[sse] subscriber disconnected remote=%s", r.RemoteAddr)
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			utils.SendSSEEvent(w, flusher, evt.Type, evt)
		case <-ticker.C:
			utils.SendSSEComment(w, flusher, "heartbeat")
		}
	}
}

// handleWebSocket 通过WebSocket推送变更
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[websocket] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := h.hub.Subscribe()
	defer cancel()

	log.Printf("[websocket] subscriber connected remote=%s", r.RemoteAddr)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// 客户端不发送业务消息，读循环只用于感知断开与处理控制帧
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Printf("[websocket] read error: %v", err)
				}
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if !h.send(conn, outgoingMessage{Type: "connected", Timestamp: time.Now().Unix()}) {
		return
	}

	for {
		select {
		case <-closed:
			log.Printf("[websocket] subscriber disconnected remote=%s", r.RemoteAddr)
			return
		case <-r.Context().Done():
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			if !h.send(conn, outgoingMessage{Type: evt.Type, Data: evt, Timestamp: evt.At.Unix()}) {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (h *Handler) send(conn *websocket.Conn, msg outgoingMessage) bool {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[websocket] write failed: %v", err)
		return false
	}
	return true
}
