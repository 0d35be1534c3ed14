package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	httpctrl "github.com/agentmesh/agent-endpoint/pkg/controller/http"
	"github.com/agentmesh/agent-endpoint/pkg/domain/interfaces"
	"github.com/agentmesh/agent-endpoint/pkg/domain/model"
	"github.com/agentmesh/agent-endpoint/pkg/domain/types"
	"github.com/agentmesh/agent-endpoint/pkg/repository/memory"
	"github.com/agentmesh/agent-endpoint/pkg/service/backend"
	"github.com/agentmesh/agent-endpoint/pkg/usecase"
)

// fakeBackend is an httptest stand-in for the platform fact API
func fakeBackend(t *testing.T) (*httptest.Server, map[string]any) {
	t.Helper()
	facts := map[string]any{}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/longterm/set", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AgentID string `json:"agentId"`
			Key     string `json:"key"`
			Value   any    `json:"value"`
		}
		gt.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		facts[req.AgentID+"/"+req.Key] = req.Value
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("GET /api/longterm/get/{agentId}/{key}", func(w http.ResponseWriter, r *http.Request) {
		value := facts[r.PathValue("agentId")+"/"+r.PathValue("key")]
		w.Header().Set("Content-Type", "application/json")
		gt.NoError(t, json.NewEncoder(w).Encode(map[string]any{"value": value}))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, facts
}

func newTestServer(t *testing.T, repo interfaces.ConversationRepository, backendURL string, profile *model.AgentProfile) *httptest.Server {
	t.Helper()

	facts, err := backend.New(backendURL)
	gt.NoError(t, err).Required()

	uc := usecase.New(repo, facts, "agent-1", profile)
	srv := httptest.NewServer(httpctrl.New(uc))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewReader([]byte(body)))
	gt.NoError(t, err).Required()
	defer resp.Body.Close()

	var decoded map[string]any
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded)).Required()
	return resp.StatusCode, decoded
}

func TestMessageEndpoint(t *testing.T) {
	backendSrv, _ := fakeBackend(t)

	t.Run("returns the agent reply with memory", func(t *testing.T) {
		repo := memory.New()
		profile := &model.AgentProfile{
			SystemPrompt: "Be helpful",
			Tools:        []model.ToolSpec{{Name: "search"}},
		}
		srv := newTestServer(t, repo, backendSrv.URL, profile)

		status, body := postJSON(t, srv.URL+"/message", `{"message":"hi"}`)
		gt.Value(t, status).Equal(http.StatusOK)
		gt.Value(t, body["role"]).Equal(any("agent"))
		gt.Value(t, body["content"]).Equal(any("Echo: hi\nContext: Be helpful\nTools: search"))

		memorySnapshot, ok := body["memory"].([]any)
		gt.Bool(t, ok).True()
		gt.Array(t, memorySnapshot).Length(1)
	})

	t.Run("missing message is an in-band error with status 200", func(t *testing.T) {
		repo := memory.New()
		srv := newTestServer(t, repo, backendSrv.URL, &model.AgentProfile{})

		for _, body := range []string{`{}`, `{"message":""}`, ``} {
			status, decoded := postJSON(t, srv.URL+"/message", body)
			gt.Value(t, status).Equal(http.StatusOK)
			gt.Value(t, decoded["error"]).Equal(any("Missing message"))
		}

		// No log mutation on validation failure
		log, err := repo.Recent(context.Background(), "agent-1", 10)
		gt.NoError(t, err).Required()
		gt.Array(t, log).Length(0)
	})

	t.Run("store fault surfaces as 500", func(t *testing.T) {
		srv := newTestServer(t, &faultyRepo{}, backendSrv.URL, &model.AgentProfile{})

		resp, err := http.Post(srv.URL+"/message", "application/json", bytes.NewReader([]byte(`{"message":"hi"}`)))
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusInternalServerError)
	})
}

func TestFactEndpoints(t *testing.T) {
	backendSrv, facts := fakeBackend(t)

	t.Run("set then get round-trips through the backend", func(t *testing.T) {
		srv := newTestServer(t, memory.New(), backendSrv.URL, &model.AgentProfile{})

		status, body := postJSON(t, srv.URL+"/fact/set", `{"key":"color","value":"blue"}`)
		gt.Value(t, status).Equal(http.StatusOK)
		gt.Value(t, body["status"]).Equal(any("ok"))
		gt.Value(t, facts["agent-1/color"]).Equal(any("blue"))

		resp, err := http.Get(srv.URL + "/fact/get/color")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var decoded map[string]any
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded)).Required()
		gt.Value(t, decoded["value"]).Equal(any("blue"))
	})

	t.Run("zero values are accepted", func(t *testing.T) {
		srv := newTestServer(t, memory.New(), backendSrv.URL, &model.AgentProfile{})

		for _, payload := range []string{
			`{"key":"flag","value":false}`,
			`{"key":"count","value":0}`,
			`{"key":"note","value":""}`,
		} {
			status, body := postJSON(t, srv.URL+"/fact/set", payload)
			gt.Value(t, status).Equal(http.StatusOK)
			gt.Value(t, body["status"]).Equal(any("ok"))
		}
	})

	t.Run("null or missing value is rejected in-band", func(t *testing.T) {
		srv := newTestServer(t, memory.New(), backendSrv.URL, &model.AgentProfile{})

		for _, payload := range []string{
			`{"key":"color","value":null}`,
			`{"key":"color"}`,
			`{"value":"blue"}`,
		} {
			status, body := postJSON(t, srv.URL+"/fact/set", payload)
			gt.Value(t, status).Equal(http.StatusOK)
			gt.Value(t, body["error"]).Equal(any("Missing key or value"))
		}
	})

	t.Run("unknown key yields null value", func(t *testing.T) {
		srv := newTestServer(t, memory.New(), backendSrv.URL, &model.AgentProfile{})

		resp, err := http.Get(srv.URL + "/fact/get/never-set")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()

		var decoded map[string]any
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded)).Required()
		gt.Value(t, decoded["value"]).Equal(nil)
	})

	t.Run("unreachable backend is an in-band error with status 200", func(t *testing.T) {
		deadBackend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		deadBackend.Close()

		srv := newTestServer(t, memory.New(), deadBackend.URL, &model.AgentProfile{})

		status, body := postJSON(t, srv.URL+"/fact/set", `{"key":"color","value":"blue"}`)
		gt.Value(t, status).Equal(http.StatusOK)
		errMsg, ok := body["error"].(string)
		gt.Bool(t, ok).True()
		gt.String(t, errMsg).NotEqual("")

		resp, err := http.Get(srv.URL + "/fact/get/color")
		gt.NoError(t, err).Required()
		defer resp.Body.Close()
		gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

		var decoded map[string]any
		gt.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded)).Required()
		errMsg, ok = decoded["error"].(string)
		gt.Bool(t, ok).True()
		gt.String(t, errMsg).NotEqual("")
	})
}

// faultyRepo simulates an unreachable conversation store
type faultyRepo struct{}

var _ interfaces.ConversationRepository = &faultyRepo{}

func (r *faultyRepo) Push(ctx context.Context, agentID types.AgentID, msg *model.Message) error {
	return goerr.New("store unavailable")
}

func (r *faultyRepo) Recent(ctx context.Context, agentID types.AgentID, limit int) ([]*model.Message, error) {
	return nil, goerr.New("store unavailable")
}

func (r *faultyRepo) Close() error {
	return nil
}
