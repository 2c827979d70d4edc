package tour

import (
	"context"
	"encoding/json"

	"backend-roteirando/internal/db"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) CreateTour(ctx context.Context, input Tour) (Tour, error) {
	input.ID = uuid.NewString()
	tiers, _ := json.Marshal(input.PriceTiers)
	row := s.db.QueryRow(ctx, `
		INSERT INTO tours (id, trip_id, name, date, time, description, price, price_tiers)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at
	`, input.ID, input.TripID, input.Name, input.Date, input.Time, input.Description, input.Price, tiers)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Tour{}, err
	}
	return input, nil
}

func (s *Service) GetTour(ctx context.Context, id string) (Tour, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, trip_id, name, date, time, description, price, price_tiers, created_at
		FROM tours WHERE id=$1
	`, id)
	return scanTour(row)
}

func (s *Service) ListTours(ctx context.Context) ([]Tour, error) {
	return s.queryTours(ctx, `
		SELECT id, trip_id, name, date, time, description, price, price_tiers, created_at
		FROM tours
		ORDER BY date, time
	`)
}

func (s *Service) ListByTrip(ctx context.Context, tripID string) ([]Tour, error) {
	return s.queryTours(ctx, `
		SELECT id, trip_id, name, date, time, description, price, price_tiers, created_at
		FROM tours WHERE trip_id=$1
		ORDER BY date, time
	`, tripID)
}

func (s *Service) UpdateTour(ctx context.Context, id string, patch Tour) (Tour, error) {
	tour, err := s.GetTour(ctx, id)
	if err != nil {
		return Tour{}, err
	}
	if patch.Name != "" {
		tour.Name = patch.Name
	}
	if patch.Date != "" {
		tour.Date = patch.Date
	}
	if patch.Time != "" {
		tour.Time = patch.Time
	}
	if patch.Description != "" {
		tour.Description = patch.Description
	}
	if patch.Price != 0 {
		tour.Price = patch.Price
	}
	if patch.PriceTiers != nil {
		tour.PriceTiers = patch.PriceTiers
	}

	tiers, _ := json.Marshal(tour.PriceTiers)
	_, err = s.db.Exec(ctx, `
		UPDATE tours
		SET name=$2, date=$3, time=$4, description=$5, price=$6, price_tiers=$7
		WHERE id=$1
	`, tour.ID, tour.Name, tour.Date, tour.Time, tour.Description, tour.Price, tiers)
	if err != nil {
		return Tour{}, err
	}
	return tour, nil
}

func (s *Service) DeleteTour(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM tours WHERE id=$1`, id)
	return err
}

func (s *Service) queryTours(ctx context.Context, sql string, args ...any) ([]Tour, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tours []Tour
	for rows.Next() {
		t, err := scanTour(rows)
		if err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}
	return tours, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTour(row rowScanner) (Tour, error) {
	var t Tour
	var tiers []byte
	if err := row.Scan(&t.ID, &t.TripID, &t.Name, &t.Date, &t.Time, &t.Description, &t.Price, &tiers, &t.CreatedAt); err != nil {
		return Tour{}, err
	}
	if len(tiers) > 0 {
		_ = json.Unmarshal(tiers, &t.PriceTiers)
	}
	return t, nil
}
