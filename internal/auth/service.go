package auth

import (
	"context"
	"errors"
	"time"

	"backend-roteirando/internal/db"
	"backend-roteirando/internal/group"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const sessionTokenTTL = 12 * time.Hour

var ErrInvalidCredentials = errors.New("invalid credentials")

// GroupFinder resolves a leader's group by the email on the group record.
type GroupFinder interface {
	FindByLeaderEmail(ctx context.Context, email string) (group.Group, error)
}

type Service struct {
	secret []byte
	db     db.Querier
	groups GroupFinder
}

type Claims struct {
	SessionID string `json:"session_id"`
	Role      Role   `json:"role"`
	GroupID   string `json:"group_id,omitempty"`
	jwt.RegisteredClaims
}

func NewService(secret string, db db.Querier, groups GroupFinder) *Service {
	return &Service{
		secret: []byte(secret),
		db:     db,
		groups: groups,
	}
}

// Login resolves the credentials against admin accounts first, then group
// leader credentials. Leader passwords are opaque legacy values compared
// verbatim; admin passwords are bcrypt hashes.
func (s *Service) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, email, name, password_hash, created_at
		FROM admins WHERE email = $1
	`, req.Email)

	var admin Admin
	err := row.Scan(&admin.ID, &admin.Email, &admin.Name, &admin.PasswordHash, &admin.CreatedAt)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)) != nil {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{Role: RoleAdmin}, nil
	}

	if s.groups == nil {
		return LoginResult{}, ErrInvalidCredentials
	}
	g, err := s.groups.FindByLeaderEmail(ctx, req.Email)
	if err != nil || g.LeaderPassword != req.Password {
		return LoginResult{}, ErrInvalidCredentials
	}
	return LoginResult{Role: RoleUser, Group: &g}, nil
}

// IssueToken signs a session token. The session id doubles as the key for
// the server-side navigation state.
func (s *Service) IssueToken(role Role, groupID string) (string, TokenResponse, error) {
	sessionID := uuid.NewString()
	claims := Claims{
		SessionID: sessionID,
		Role:      role,
		GroupID:   groupID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", TokenResponse{}, err
	}
	return sessionID, TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int64(sessionTokenTTL.Seconds()),
	}, nil
}

func (s *Service) ValidateToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}
