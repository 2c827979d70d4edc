package group

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

const groupColumns = `id, trip_id, name, member_count, members, leader_name, leader_email, leader_phone, leader_password, password_changed, attendance, created_at`

func (s *Service) CreateGroup(ctx context.Context, input Group) (Group, error) {
	input.ID = uuid.NewString()
	if input.MemberCount == 0 {
		input.MemberCount = len(input.Members)
	}
	members, _ := json.Marshal(input.Members)
	attendance, _ := json.Marshal(input.Attendance)

	row := s.db.QueryRow(ctx, `
		INSERT INTO groups (id, trip_id, name, member_count, members, leader_name, leader_email, leader_phone, leader_password, password_changed, attendance)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING created_at
	`, input.ID, input.TripID, input.Name, input.MemberCount, members, input.LeaderName, input.LeaderEmail, input.LeaderPhone, input.LeaderPassword, input.PasswordChanged, attendance)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Group{}, err
	}
	return input, nil
}

func (s *Service) GetGroup(ctx context.Context, id string) (Group, error) {
	row := s.db.QueryRow(ctx, `SELECT `+groupColumns+` FROM groups WHERE id=$1`, id)
	return scanGroup(row)
}

// FindByLeaderEmail resolves the group a leader credential belongs to.
func (s *Service) FindByLeaderEmail(ctx context.Context, email string) (Group, error) {
	row := s.db.QueryRow(ctx, `SELECT `+groupColumns+` FROM groups WHERE leader_email=$1`, email)
	return scanGroup(row)
}

func (s *Service) ListGroups(ctx context.Context) ([]Group, error) {
	return s.queryGroups(ctx, `SELECT `+groupColumns+` FROM groups ORDER BY name`)
}

func (s *Service) ListByTrip(ctx context.Context, tripID string) ([]Group, error) {
	return s.queryGroups(ctx, `SELECT `+groupColumns+` FROM groups WHERE trip_id=$1 ORDER BY name`, tripID)
}

func (s *Service) UpdateGroup(ctx context.Context, id string, patch Group) (Group, error) {
	g, err := s.GetGroup(ctx, id)
	if err != nil {
		return Group{}, err
	}
	if patch.Name != "" {
		g.Name = patch.Name
	}
	if patch.Members != nil {
		g.Members = patch.Members
		g.MemberCount = len(patch.Members)
	}
	if patch.MemberCount != 0 {
		g.MemberCount = patch.MemberCount
	}
	if patch.LeaderName != "" {
		g.LeaderName = patch.LeaderName
	}
	if patch.LeaderEmail != "" {
		g.LeaderEmail = patch.LeaderEmail
	}
	if patch.LeaderPhone != "" {
		g.LeaderPhone = patch.LeaderPhone
	}

	members, _ := json.Marshal(g.Members)
	_, err = s.db.Exec(ctx, `
		UPDATE groups
		SET name=$2, member_count=$3, members=$4, leader_name=$5, leader_email=$6, leader_phone=$7
		WHERE id=$1
	`, g.ID, g.Name, g.MemberCount, members, g.LeaderName, g.LeaderEmail, g.LeaderPhone)
	if err != nil {
		return Group{}, err
	}
	return g, nil
}

func (s *Service) DeleteGroup(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM groups WHERE id=$1`, id)
	return err
}

// SaveAttendance replaces the stored entry for (group, tour). An empty
// member list removes the key: a zero-member entry means "no attendance"
// and must not survive as a stored confirmation.
func (s *Service) SaveAttendance(ctx context.Context, groupID, tourID string, members []string, customDate string) error {
	if len(members) == 0 {
		_, err := s.db.Exec(ctx, `
			UPDATE groups SET attendance = COALESCE(attendance,'{}'::jsonb) - $2 WHERE id=$1
		`, groupID, tourID)
		return err
	}

	entry := map[string]any{"members": members}
	if customDate != "" {
		entry["customDate"] = customDate
	}
	payload, _ := json.Marshal(entry)

	_, err := s.db.Exec(ctx, `
		UPDATE groups
		SET attendance = jsonb_set(COALESCE(attendance,'{}'::jsonb), ARRAY[$2], $3::jsonb, true)
		WHERE id=$1
	`, groupID, tourID, payload)
	return err
}

// UpdatePassword stores the leader's new credential and flips the
// first-access flag.
func (s *Service) UpdatePassword(ctx context.Context, groupID, newPassword string) error {
	_, err := s.db.Exec(ctx, `
		UPDATE groups SET leader_password=$2, password_changed=true WHERE id=$1
	`, groupID, newPassword)
	return err
}

func (s *Service) queryGroups(ctx context.Context, sql string, args ...any) ([]Group, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGroup(row rowScanner) (Group, error) {
	var g Group
	var members, attendance []byte
	if err := row.Scan(&g.ID, &g.TripID, &g.Name, &g.MemberCount, &members, &g.LeaderName, &g.LeaderEmail, &g.LeaderPhone, &g.LeaderPassword, &g.PasswordChanged, &attendance, &g.CreatedAt); err != nil {
		return Group{}, err
	}
	if len(members) > 0 {
		_ = json.Unmarshal(members, &g.Members)
	}
	if len(attendance) > 0 {
		_ = json.Unmarshal(attendance, &g.Attendance)
	}
	return g, nil
}
