package tour

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

func TestTourHandlers(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO tours`).
		WithArgs(pgxmock.AnyArg(), "trip-1", "Passeio", "", "", "", 0.0, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	mock.ExpectQuery(`SELECT id, trip_id, name, date, time, description, price, price_tiers, created_at`).
		WithArgs("trip-1").
		WillReturnRows(pgxmock.NewRows(tourColumns).
			AddRow("tour-1", "trip-1", "Passeio", "2026-03-10", "08:00", "", 80.0, []byte(`{}`), time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/tours"), NewService(mock), passthrough, passthrough)

	body, _ := json.Marshal(Tour{TripID: "trip-1", Name: "Passeio"})
	req := httptest.NewRequest(http.MethodPost, "/tours", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("create tour status: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/tours?trip_id=trip-1", nil)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("filtered list status: %v", err)
	}
}

func TestTourHandlersValidation(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/tours"), NewService(nil), passthrough, passthrough)

	req := httptest.NewRequest(http.MethodPost, "/tours", bytes.NewReader([]byte(`{"name":"sem viagem"}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request")
	}
}

func TestTourHandlersNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, trip_id, name, date, time, description, price, price_tiers, created_at`).
		WithArgs("missing").
		WillReturnError(errQuery)

	app := fiber.New()
	RegisterRoutes(app.Group("/tours"), NewService(mock), passthrough, passthrough)

	req := httptest.NewRequest(http.MethodGet, "/tours/missing", nil)
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", resp.StatusCode)
	}
}
