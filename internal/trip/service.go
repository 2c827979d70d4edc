package trip

import (
	"context"
	"encoding/json"
	"time"

	"backend-roteirando/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

// nowFn is swapped in tests that pin the status derivation date.
var nowFn = time.Now

// DeriveStatus computes a trip status from its date range. It runs once at
// save time; the stored value is never recomputed afterwards.
func DeriveStatus(start, end time.Time, now time.Time) string {
	today := dateOnly(now)
	start = dateOnly(start)
	end = dateOnly(end)

	switch {
	case end.Before(today):
		return StatusCompleted
	case !start.After(today) && !end.Before(today):
		return StatusActive
	default:
		return StatusUpcoming
	}
}

func (s *Service) CreateTrip(ctx context.Context, input Trip) (Trip, error) {
	input.ID = uuid.NewString()
	input.Status = DeriveStatus(input.StartDate, input.EndDate, nowFn())

	links, _ := json.Marshal(input.Links)
	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (id, name, destination, start_date, end_date, description, status, image_url, links)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at
	`, input.ID, input.Name, input.Destination, input.StartDate, input.EndDate, input.Description, input.Status, input.ImageURL, links)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Trip{}, err
	}
	return input, nil
}

func (s *Service) GetTrip(ctx context.Context, id string) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, destination, start_date, end_date, description, status, image_url, links, created_at
		FROM trips WHERE id=$1
	`, id)
	return scanTrip(row)
}

func (s *Service) ListTrips(ctx context.Context) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, destination, start_date, end_date, description, status, image_url, links, created_at
		FROM trips
		ORDER BY start_date
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func (s *Service) UpdateTrip(ctx context.Context, id string, patch Trip) (Trip, error) {
	trip, err := s.GetTrip(ctx, id)
	if err != nil {
		return Trip{}, err
	}
	if patch.Name != "" {
		trip.Name = patch.Name
	}
	if patch.Destination != "" {
		trip.Destination = patch.Destination
	}
	if !patch.StartDate.IsZero() {
		trip.StartDate = patch.StartDate
	}
	if !patch.EndDate.IsZero() {
		trip.EndDate = patch.EndDate
	}
	if patch.Description != "" {
		trip.Description = patch.Description
	}
	if patch.ImageURL != "" {
		trip.ImageURL = patch.ImageURL
	}
	if patch.Links != nil {
		trip.Links = patch.Links
	}

	links, _ := json.Marshal(trip.Links)
	_, err = s.db.Exec(ctx, `
		UPDATE trips
		SET name=$2, destination=$3, start_date=$4, end_date=$5, description=$6, image_url=$7, links=$8
		WHERE id=$1
	`, trip.ID, trip.Name, trip.Destination, trip.StartDate, trip.EndDate, trip.Description, trip.ImageURL, links)
	if err != nil {
		return Trip{}, err
	}
	return trip, nil
}

func (s *Service) DeleteTrip(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id=$1`, id)
	return err
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrip(row rowScanner) (Trip, error) {
	var t Trip
	var links []byte
	if err := row.Scan(&t.ID, &t.Name, &t.Destination, &t.StartDate, &t.EndDate, &t.Description, &t.Status, &t.ImageURL, &links, &t.CreatedAt); err != nil {
		return Trip{}, err
	}
	if len(links) > 0 {
		_ = json.Unmarshal(links, &t.Links)
	}
	return t, nil
}
