package routes

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Dosada05/beach-tournament/brackets"
	"github.com/Dosada05/beach-tournament/handlers"
	"github.com/Dosada05/beach-tournament/repositories"
	"github.com/Dosada05/beach-tournament/services"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

type testAPI struct {
	t      *testing.T
	server *httptest.Server
	token  string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	secret := []byte("route-secret")
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	repo := repositories.NewFileSnapshotRepository(filepath.Join(t.TempDir(), "snapshot.json"))
	hub := brackets.NewHub(nil)
	session := services.NewSession(repo, nil, hub, rand.New(rand.NewSource(3)), nil)
	auth := services.NewAuthService(services.AuthConfig{Username: "organizer", PasswordHash: string(hash), Secret: secret, TTL: time.Hour})

	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Health:     handlers.NewHealthHandler(session),
		Auth:       handlers.NewAuthHandler(auth),
		Tournament: handlers.NewTournamentHandler(session),
		Athlete:    handlers.NewAthleteHandler(session),
		Team:       handlers.NewTeamHandler(session),
		Ranking:    handlers.NewRankingHandler(session),
		WebSocket:  handlers.NewWebSocketHandler(hub, []string{"*"}),
	}, secret, []string{"*"})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return &testAPI{t: t, server: server}
}

func (a *testAPI) do(method, path string, body any, auth bool) (int, map[string]any) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			a.t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, a.server.URL+path, reader)
	if err != nil {
		a.t.Fatalf("request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if auth {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		a.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	out := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func (a *testAPI) login() {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/auth/login", map[string]string{"username": "organizer", "password": "pw"}, false)
	if status != http.StatusOK {
		a.t.Fatalf("login failed with %d: %v", status, body)
	}
	a.token, _ = body["token"].(string)
}

func TestPublicRoutes(t *testing.T) {
	api := newTestAPI(t)
	tests := []struct {
		path string
		want int
	}{
		{"/health", http.StatusOK},
		{"/tournament", http.StatusOK},
		{"/tournament/bracket", http.StatusOK},
		{"/tournament/groups/0/standings", http.StatusNotFound},
		{"/tournament/groups/x/standings", http.StatusBadRequest},
		{"/athletes", http.StatusOK},
		{"/athletes/unknown", http.StatusNotFound},
		{"/athletes/unknown/trophies", http.StatusNotFound},
		{"/trophies", http.StatusOK},
		{"/ranking", http.StatusOK},
		{"/ranking/top?limit=5", http.StatusOK},
		{"/ranking/top?limit=0", http.StatusBadRequest},
		{"/swagger/doc.json", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if status, body := api.do(http.MethodGet, tt.path, nil, false); status != tt.want {
				t.Fatalf("expected %d, got %d: %v", tt.want, status, body)
			}
		})
	}
}

func TestOrganizerRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)
	if status, _ := api.do(http.MethodPost, "/athletes", map[string]string{"first_name": "Ada"}, false); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
	if status, _ := api.do(http.MethodPost, "/auth/login", map[string]string{"username": "organizer", "password": "bad"}, false); status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", status)
	}
}

func TestOrganizerWorkflow(t *testing.T) {
	api := newTestAPI(t)
	api.login()

	var athleteIDs []string
	for _, name := range []string{"Ada", "Bea", "Cleo", "Dina", "Eva", "Fede", "Gaia", "Ilda"} {
		status, body := api.do(http.MethodPost, "/athletes", map[string]string{"first_name": name, "last_name": "Mare"}, true)
		if status != http.StatusCreated {
			t.Fatalf("create athlete %s: %d %v", name, status, body)
		}
		athlete := body["athlete"].(map[string]any)
		athleteIDs = append(athleteIDs, athlete["id"].(string))
	}
	if status, _ := api.do(http.MethodPost, "/athletes", map[string]string{"first_name": "ada", "last_name": "mare"}, true); status != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate athlete, got %d", status)
	}
	if status, _ := api.do(http.MethodPost, "/athletes", map[string]string{"first_name": "Ada", "nickname": "x"}, true); status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", status)
	}

	if status, _ := api.do(http.MethodPost, "/tournament/start", nil, true); status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 starting without teams, got %d", status)
	}

	for i := 0; i < len(athleteIDs); i += 2 {
		status, body := api.do(http.MethodPost, "/teams", map[string]any{"athlete_ids": athleteIDs[i : i+2]}, true)
		if status != http.StatusCreated {
			t.Fatalf("create team: %d %v", status, body)
		}
	}
	if status, _ := api.do(http.MethodPost, "/teams", map[string]any{"athlete_ids": athleteIDs[:1]}, true); status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a short team, got %d", status)
	}

	badConfig := map[string]any{"name": "Cup", "players_per_team": 2, "set_format": "single_set", "max_points": 40}
	if status, _ := api.do(http.MethodPut, "/tournament/config", badConfig, true); status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for max points 40, got %d", status)
	}
	config := map[string]any{"name": "Cup", "players_per_team": 2, "set_format": "single_set", "max_points": 21}
	if status, body := api.do(http.MethodPut, "/tournament/config", config, true); status != http.StatusOK {
		t.Fatalf("update config: %d %v", status, body)
	}

	status, body := api.do(http.MethodPost, "/tournament/start", nil, true)
	if status != http.StatusOK || body["phase"] != "group_stage" {
		t.Fatalf("start: %d %v", status, body)
	}
	groups := body["groups"].([]any)
	firstGroup := groups[0].(map[string]any)
	match := firstGroup["matches"].([]any)[0].(map[string]any)
	matchID := match["id"].(string)

	result := map[string]any{"sets": []map[string]int{{"a": 21, "b": 20}}}
	if status, _ := api.do(http.MethodPost, "/matches/"+matchID+"/result", result, true); status != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a one point margin, got %d", status)
	}
	result = map[string]any{"sets": []map[string]int{{"a": 21, "b": 18}}}
	status, body = api.do(http.MethodPost, "/matches/"+matchID+"/result", result, true)
	if status != http.StatusOK {
		t.Fatalf("submit result: %d %v", status, body)
	}
	if body["match"].(map[string]any)["winner"] != match["team_a"] {
		t.Fatalf("unexpected winner %v", body["match"])
	}
	if status, _ := api.do(http.MethodPost, "/matches/nope/simulate", nil, true); status != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown match, got %d", status)
	}

	if status, _ := api.do(http.MethodPost, "/tournament/advance", nil, true); status != http.StatusConflict {
		t.Fatalf("expected 409 advancing with open group matches, got %d", status)
	}

	status, body = api.do(http.MethodGet, "/tournament/groups/0/standings", nil, false)
	if status != http.StatusOK || len(body["standings"].([]any)) != 2 {
		t.Fatalf("standings: %d %v", status, body)
	}

	status, body = api.do(http.MethodPost, "/tournament/reset", nil, true)
	if status != http.StatusOK || body["phase"] != "setup" {
		t.Fatalf("reset: %d %v", status, body)
	}
}
