// Package auth implements login/logout over server-side sessions plus Bearer
// tokens for non-browser clients.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tijara-app/tijara-api/internal/application/dto"
	"github.com/tijara-app/tijara-api/internal/domain"
	"github.com/tijara-app/tijara-api/internal/domain/entity"
	"github.com/tijara-app/tijara-api/internal/domain/repository"
	"github.com/tijara-app/tijara-api/pkg/jwt"
	"github.com/tijara-app/tijara-api/pkg/logger"
)

// Service authenticates users and manages their sessions.
type Service struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	jwtSecret  string
	jwtIssuer  string
	jwtExpMin  int
	sessionTTL time.Duration
	log        *logger.Logger
}

// NewService builds the auth service.
func NewService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	jwtSecret, jwtIssuer string,
	jwtExpMin, sessionTTLHours int,
	log *logger.Logger,
) *Service {
	return &Service{
		users:      users,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		jwtIssuer:  jwtIssuer,
		jwtExpMin:  jwtExpMin,
		sessionTTL: time.Duration(sessionTTLHours) * time.Hour,
		log:        log,
	}
}

// Login verifies the credentials and opens a session. The returned session
// token goes into the HttpOnly cookie; the JWT goes into the response body.
func (s *Service) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, *entity.Session, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		// Same failure as a bad password so usernames cannot be probed.
		return nil, nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, domain.ErrUnauthorized
	}

	session := &entity.Session{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: time.Now().UTC().Add(s.sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, nil, err
	}

	token, err := jwt.Generate(s.jwtSecret, user.ID, user.Role, s.jwtIssuer, s.jwtExpMin)
	if err != nil {
		return nil, nil, err
	}

	s.log.Info().Str("userId", user.ID).Str("username", user.Username).Msg("user logged in")
	return &dto.LoginResponse{User: *dto.ToUserResponse(user), Token: token}, session, nil
}

// Logout deletes the session row. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Resolve validates a session token and returns its user. Expired sessions
// are rejected and removed.
func (s *Service) Resolve(ctx context.Context, token string) (*entity.User, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if session.Expired(time.Now().UTC()) {
		_ = s.sessions.Delete(ctx, token)
		return nil, domain.ErrSessionExpired
	}
	user, err := s.users.GetByID(ctx, session.UserID)
	if err != nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// ResolveBearer validates a Bearer JWT and returns the user.
func (s *Service) ResolveBearer(ctx context.Context, token string) (*entity.User, error) {
	userID, _, err := jwt.Parse(s.jwtSecret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// Status returns the user behind a session token, for GET /api/auth/status.
func (s *Service) Status(ctx context.Context, token string) (*dto.UserResponse, error) {
	user, err := s.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

// PurgeExpired removes stale session rows; run periodically from main.
func (s *Service) PurgeExpired(ctx context.Context) {
	if err := s.sessions.DeleteExpired(ctx); err != nil {
		s.log.Warn().Err(err).Msg("purge expired sessions")
	}
}
