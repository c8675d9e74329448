// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/quickly-rank/models"
	"github.com/danielhkuo/quickly-rank/ranking"
	"github.com/danielhkuo/quickly-rank/sessions"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

type EventsHandler struct {
	mgr      *sessions.Manager
	upgrader websocket.Upgrader
}

func NewEventsHandler(mgr *sessions.Manager) *EventsHandler {
	return &EventsHandler{
		mgr: mgr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// CORS already admits any origin
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Stream handles GET /sessions/{id}/events
//
// The first frame is the current state; after that one frame per
// transition. The socket is closed when the session is reset.
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	events, cancel, err := h.mgr.Subscribe(id)
	if err != nil {
		writeError(w, err, "subscribe")
		return
	}
	defer cancel()

	snap, err := h.mgr.Get(id)
	if err != nil {
		writeError(w, err, "subscribe")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		slog.Warn("websocket upgrade failed", "session_id", id, "error", err)
		return
	}
	defer conn.Close()

	slog.Info("event stream opened", "session_id", id)

	// Reader: only pongs and the close frame matter
	done := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.write(conn, h.initialMessage(id, snap)); err != nil {
		return
	}

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session reset"))
				return
			}
			if err := h.write(conn, eventMessage(ev)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			slog.Info("event stream closed", "session_id", id)
			return
		}
	}
}

func (h *EventsHandler) write(conn *websocket.Conn, msg models.EventMessage) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(msg); err != nil {
		slog.Warn("failed to write event", "type", msg.Type, "error", err)
		return err
	}
	return nil
}

func (h *EventsHandler) initialMessage(id string, snap sessions.Snapshot) models.EventMessage {
	msg := models.EventMessage{
		Type:         ranking.EventPairReady,
		Progress:     snap.Progress,
		ProgressText: progressText(snap.Progress),
		Current:      snap.Current,
	}
	if snap.Progress.State == ranking.StateComplete {
		msg.Type = ranking.EventComplete
		if ranked, _, err := h.mgr.Result(id); err == nil {
			msg.Rankings = ranked
		}
	}
	return msg
}

func eventMessage(ev sessions.Event) models.EventMessage {
	return models.EventMessage{
		Type:         ev.Type,
		Progress:     ev.Progress,
		ProgressText: progressText(ev.Progress),
		Current:      ev.Current,
		Rankings:     ev.Result,
	}
}
