// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/quickly-rank/cliparse"
	"github.com/danielhkuo/quickly-rank/db"
	"github.com/danielhkuo/quickly-rank/models"
	"github.com/danielhkuo/quickly-rank/ranking"
	"github.com/danielhkuo/quickly-rank/sessions"
	"github.com/danielhkuo/quickly-rank/testutil"
)

type testEnv struct {
	cfg      cliparse.Config
	mgr      *sessions.Manager
	sessions *SessionHandler
	results  *ResultsHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := testutil.GetTestConfig()
	mgr := sessions.NewManager(
		db.NewStore(testutil.SetupTestDB(t)),
		nil,
		sessions.WithMaxItems(cfg.MaxItems),
	)
	return &testEnv{
		cfg:      cfg,
		mgr:      mgr,
		sessions: NewSessionHandler(mgr, cfg),
		results:  NewResultsHandler(mgr, cfg),
	}
}

// create starts a session over items through the handler.
func (e *testEnv) create(t *testing.T, items []ranking.Item) models.CreateSessionResponse {
	t.Helper()
	req := testutil.MakeRequest("POST", "/sessions", models.NewCreateSessionRequest(items), nil)
	w := httptest.NewRecorder()
	e.sessions.CreateSession(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateSessionResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func (e *testEnv) judge(t *testing.T, id, key string, itemID ranking.ItemID) *httptest.ResponseRecorder {
	t.Helper()
	req := testutil.MakeRequest("POST", "/sessions/"+id+"/judgments",
		map[string]any{"item_id": itemID},
		map[string]string{SessionKeyHeader: key})
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	e.sessions.Judge(w, req)
	return w
}

// judgeAll picks the first slot until the session is complete.
func (e *testEnv) judgeAll(t *testing.T, created models.CreateSessionResponse) models.SessionResponse {
	t.Helper()
	cur := created.SessionResponse
	for cur.Current != nil {
		w := e.judge(t, created.SessionID, created.SessionKey, cur.Current.First.ID)
		testutil.AssertStatus(t, w, http.StatusOK)
		cur = models.SessionResponse{}
		if err := json.NewDecoder(w.Body).Decode(&cur); err != nil {
			t.Fatalf("Failed to decode judge response: %v", err)
		}
	}
	return cur
}

func get(h http.HandlerFunc, path, id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	req.SetPathValue("id", id)
	w := httptest.NewRecorder()
	h(w, req)
	return w
}
