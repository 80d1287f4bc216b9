package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/pskpp/festival/brackets"
	"github.com/pskpp/festival/services"
)

const clientSendBuffer = 256

type WebSocketHandler struct {
	hub          *brackets.Hub
	eventService services.EventService
	upgrader     websocket.Upgrader
	logger       *slog.Logger
}

// NewWebSocketHandler creates the handler. An empty allowedOrigins accepts any
// origin.
func NewWebSocketHandler(hub *brackets.Hub, es services.EventService, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	if logger == nil {
		logger = slog.Default()
	}
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &WebSocketHandler{
		hub:          hub,
		eventService: es,
		logger:       logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || allowed["*"] || origin == "" || allowed[origin]
			},
		},
	}
}

// ServeWs subscribes the client to bracket updates of one event at
// /ws/events/{eventID}. The current layout is sent right after the
// connection is registered.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	layout, err := h.eventService.BracketLayout(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade сам отвечает клиенту ошибкой.
		h.logger.Warn("websocket upgrade failed", slog.String("event_id", eventID), slog.Any("error", err))
		return
	}

	room := brackets.RoomForEvent(eventID)
	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, clientSendBuffer),
		Room: room,
	}
	if !h.hub.RegisterClient(client) {
		// Сервер останавливается.
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"), time.Now().Add(time.Second))
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()

	if msg, err := brackets.EncodeBracketUpdate(eventID, layout); err == nil {
		client.Mu.Lock()
		if !client.IsClosed {
			select {
			case client.Send <- msg:
			default:
			}
		}
		client.Mu.Unlock()
	}
}
