package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"backend-roteirando/internal/auth"
	"backend-roteirando/internal/group"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

type fakeFinder struct {
	group group.Group
	err   error
}

func (f fakeFinder) FindByLeaderEmail(_ context.Context, _ string) (group.Group, error) {
	return f.group, f.err
}

func sessionApp(t *testing.T, stores *fakeStores, finder fakeFinder) (*fiber.App, *Manager) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	// every login first misses the admins table and falls back to the finder
	mock.MatchExpectationsInOrder(false)
	mock.ExpectQuery(`SELECT id, email, name, password_hash, created_at`).
		WithArgs(pgxmock.AnyArg()).
		WillReturnError(errors.New("no admin"))

	authSvc := auth.NewService("secret", mock, finder)
	manager := NewManager()

	app := fiber.New()
	RegisterRoutes(app.Group("/session"), Deps{
		Auth:    authSvc,
		Manager: manager,
		Trips:   stores,
		Tours:   stores,
		Groups:  stores,
		Writer:  &fakeWriter{},
	}, auth.JWTMiddleware("secret"))
	return app, manager
}

type loginResponse struct {
	Tokens auth.TokenResponse `json:"tokens"`
	View   View               `json:"view"`
}

func doLogin(t *testing.T, app *fiber.App) loginResponse {
	t.Helper()

	body, _ := json.Marshal(auth.LoginRequest{Email: "maria@exemplo.com", Password: "senha123"})
	req := httptest.NewRequest(http.MethodPost, "/session/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("login status: %v (%d)", err, resp.StatusCode)
	}

	var payload loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return payload
}

func authed(req *http.Request, tokens auth.TokenResponse) *http.Request {
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	return req
}

func TestSessionLoginCreatesMachine(t *testing.T) {
	stores := testStores()
	stores.refetched = stores.groups[0]
	app, _ := sessionApp(t, stores, fakeFinder{group: stores.groups[0]})

	payload := doLogin(t, app)
	if payload.View.Screen != ScreenTripDetails {
		t.Fatalf("leader lands on trip details, got %v", payload.View.Screen)
	}
	if payload.Tokens.AccessToken == "" {
		t.Fatalf("expected tokens")
	}

	req := authed(httptest.NewRequest(http.MethodGet, "/session/", nil), payload.Tokens)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("view status: %v", err)
	}
}

func TestSessionLoginInvalidCredentials(t *testing.T) {
	app, _ := sessionApp(t, testStores(), fakeFinder{err: errors.New("not found")})

	body, _ := json.Marshal(auth.LoginRequest{Email: "x@y.com", Password: "errada"})
	req := httptest.NewRequest(http.MethodPost, "/session/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSessionNavigateBlockedKeepsView(t *testing.T) {
	stores := testStores()
	stores.refetched = stores.groups[0]
	app, _ := sessionApp(t, stores, fakeFinder{group: stores.groups[0]})
	payload := doLogin(t, app)

	body, _ := json.Marshal(map[string]string{"screen": string(ScreenAllTours)})
	req := authed(httptest.NewRequest(http.MethodPost, "/session/navigate", bytes.NewReader(body)), payload.Tokens)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("navigate status: %v", err)
	}

	var view View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Screen != ScreenTripDetails {
		t.Fatalf("blocked navigation must return the unchanged view, got %v", view.Screen)
	}
}

func TestSessionLogoutDropsMachine(t *testing.T) {
	stores := testStores()
	stores.refetched = stores.groups[0]
	app, _ := sessionApp(t, stores, fakeFinder{group: stores.groups[0]})
	payload := doLogin(t, app)

	req := authed(httptest.NewRequest(http.MethodPost, "/session/logout", nil), payload.Tokens)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("logout status: %v", err)
	}

	// the token still parses but its machine is gone
	req = authed(httptest.NewRequest(http.MethodGet, "/session/", nil), payload.Tokens)
	resp, _ = app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", resp.StatusCode)
	}
}

func TestSessionRequiresToken(t *testing.T) {
	app, _ := sessionApp(t, testStores(), fakeFinder{})

	req := httptest.NewRequest(http.MethodGet, "/session/", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestSessionAttendanceSubmitAndAgenda(t *testing.T) {
	stores := testStores()
	stores.refetched = stores.groups[0]
	app, _ := sessionApp(t, stores, fakeFinder{group: stores.groups[0]})
	payload := doLogin(t, app)

	body, _ := json.Marshal(map[string]any{"tour_id": "tour-2", "members": []string{"Ana"}})
	req := authed(httptest.NewRequest(http.MethodPost, "/session/attendance", bytes.NewReader(body)), payload.Tokens)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("submit status: %v", err)
	}

	req = authed(httptest.NewRequest(http.MethodGet, "/session/agenda", nil), payload.Tokens)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("agenda status: %v", err)
	}
}

func TestSessionPasswordChange(t *testing.T) {
	stores := testStores()
	fresh := stores.groups[0]
	fresh.PasswordChanged = false
	stores.refetched = fresh
	stores.groups[0] = fresh
	app, _ := sessionApp(t, stores, fakeFinder{group: fresh})
	payload := doLogin(t, app)

	if !payload.View.PasswordPrompt {
		t.Fatalf("expected first-access prompt")
	}

	body, _ := json.Marshal(map[string]string{"password": "nova-senha"})
	req := authed(httptest.NewRequest(http.MethodPost, "/session/password", bytes.NewReader(body)), payload.Tokens)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("password status: %v", err)
	}

	var view View
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.PasswordPrompt {
		t.Fatalf("prompt must clear after change")
	}
}
