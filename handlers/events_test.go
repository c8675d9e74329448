// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/quickly-rank/auth"
	"github.com/danielhkuo/quickly-rank/models"
	"github.com/danielhkuo/quickly-rank/ranking"
	"github.com/danielhkuo/quickly-rank/testutil"
)

func dialEvents(t *testing.T, env *testEnv, id string) *websocket.Conn {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /sessions/{id}/events", NewEventsHandler(env.mgr).Stream)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/sessions/" + id + "/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Failed to dial events: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) models.EventMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg models.EventMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read event: %v", err)
	}
	return msg
}

func TestEvents_Stream(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, testutil.Items(2))
	conn := dialEvents(t, env, created.SessionID)

	first := readEvent(t, conn)
	if first.Type != ranking.EventPairReady {
		t.Fatalf("Expected pair_ready, got %s", first.Type)
	}
	if first.Current == nil || *first.Current != *created.Current {
		t.Errorf("Expected initial frame to carry the current pair")
	}
	if first.ProgressText != "Choice 1 of 1" {
		t.Errorf("Expected 'Choice 1 of 1', got '%s'", first.ProgressText)
	}

	if _, err := env.mgr.Judge(context.Background(), created.SessionID, created.Current.First.ID); err != nil {
		t.Fatal(err)
	}

	done := readEvent(t, conn)
	if done.Type != ranking.EventComplete {
		t.Fatalf("Expected complete, got %s", done.Type)
	}
	if len(done.Rankings) != 2 || done.Rankings[0].Item.ID != created.Current.First.ID {
		t.Errorf("Unexpected rankings: %+v", done.Rankings)
	}
}

func TestEvents_ClosedOnReset(t *testing.T) {
	env := newTestEnv(t)
	created := env.create(t, testutil.Items(3))
	conn := dialEvents(t, env, created.SessionID)
	readEvent(t, conn)

	if err := env.mgr.Reset(context.Background(), created.SessionID); err != nil {
		t.Fatal(err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
		t.Errorf("Expected normal close after reset, got %v", err)
	}
}

func TestEvents_UnknownSession(t *testing.T) {
	env := newTestEnv(t)
	id := auth.NewSessionID()

	w := get(NewEventsHandler(env.mgr).Stream, "/sessions/"+id+"/events", id)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
