package group

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func passthrough(c *fiber.Ctx) error { return c.Next() }

func TestGroupHandlersCreate(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO groups`).
		WithArgs(pgxmock.AnyArg(), "trip-1", "Família Silva", 2, pgxmock.AnyArg(),
			"Maria Silva", "maria@exemplo.com", "", "senha123", false, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/groups"), NewService(mock), passthrough, passthrough)

	body := []byte(`{
		"trip_id": "trip-1",
		"name": "Família Silva",
		"members": ["Ana","Beto"],
		"leader_name": "Maria Silva",
		"leader_email": "maria@exemplo.com",
		"leader_password": "senha123"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/groups", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create group status: %v (%d)", err, resp.StatusCode)
	}

	var created Group
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.LeaderPassword != "" {
		t.Fatalf("leader password must not be serialized")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGroupHandlersValidation(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/groups"), NewService(nil), passthrough, passthrough)

	req := httptest.NewRequest(http.MethodPost, "/groups", bytes.NewReader([]byte(`{"name":"sem viagem"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestGroupHandlersListByTrip(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, trip_id, name, member_count, members`).
		WithArgs("trip-1").
		WillReturnRows(groupRow("group-1"))

	app := fiber.New()
	RegisterRoutes(app.Group("/groups"), NewService(mock), passthrough, passthrough)

	req := httptest.NewRequest(http.MethodGet, "/groups?trip_id=trip-1", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list by trip status: %v", err)
	}
}

func TestGroupHandlersNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, trip_id, name, member_count, members`).
		WithArgs("missing").
		WillReturnError(errQuery)

	app := fiber.New()
	RegisterRoutes(app.Group("/groups"), NewService(mock), passthrough, passthrough)

	req := httptest.NewRequest(http.MethodGet, "/groups/missing", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
}
