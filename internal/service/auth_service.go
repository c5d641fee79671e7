package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"easyfindshub/internal/auth"
	apperrors "easyfindshub/internal/errors"
	"easyfindshub/internal/metrics"
	"easyfindshub/internal/model"
)

const (
	bcryptCost        = 10
	minPasswordLength = 6
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// DraftDiscarder drops a session's draft.
type DraftDiscarder interface {
	Discard(sessionID uuid.UUID)
}

// AuthService handles the admin sign-in flow.
type AuthService interface {
	Login(ctx context.Context, email, password string) (session *model.Session, token string, err error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*model.Session, error)
	// DiscardSession drops the draft of a session that has ended.
	DiscardSession(sessionID uuid.UUID)
}

type authService struct {
	adminEmail string
	adminHash  []byte
	sessions   *auth.SessionStore
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
	drafts     DraftDiscarder
	now        func() time.Time
}

// NewAuthService creates the authentication service for the single admin
// credential. The password is hashed once here and only the hash is kept.
func NewAuthService(
	adminEmail, adminPassword string,
	sessions *auth.SessionStore,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	drafts DraftDiscarder,
) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}

	return &authService{
		adminEmail: adminEmail,
		adminHash:  hash,
		sessions:   sessions,
		jwtService: jwtService,
		tokenStore: tokenStore,
		drafts:     drafts,
		now:        time.Now,
	}, nil
}

// Login checks, in order, the email format, the password length and the
// credential pair, then opens a session.
func (s *authService) Login(ctx context.Context, email, password string) (*model.Session, string, error) {
	if !emailPattern.MatchString(email) {
		metrics.RecordLogin("invalid_format")
		return nil, "", apperrors.ErrInvalidFormat
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		metrics.RecordLogin("weak_credential")
		return nil, "", apperrors.ErrWeakCredential
	}
	if email != s.adminEmail || bcrypt.CompareHashAndPassword(s.adminHash, []byte(password)) != nil {
		metrics.RecordLogin("failed")
		slog.Warn("admin login rejected", "email", email)
		return nil, "", apperrors.ErrAuthenticationFailed
	}

	sessionID := uuid.New()
	token, expiresAt, err := s.jwtService.GenerateSessionToken(sessionID, email, true)
	if err != nil {
		return nil, "", fmt.Errorf("generate session token: %w", err)
	}
	session := s.sessions.Create(sessionID, email, true, expiresAt)

	metrics.RecordLogin("success")
	metrics.ActiveSessions.Set(float64(s.sessions.Len()))
	slog.Info("admin signed in", "session_id", session.ID)
	return session, token, nil
}

// Logout always succeeds. An expired but authentic token still ends its
// session and draft; only a live token needs revoking.
func (s *authService) Logout(ctx context.Context, token string) error {
	sessionID, err := s.jwtService.SessionIDIgnoringExpiry(token)
	if err != nil {
		return nil
	}

	s.sessions.Delete(sessionID)
	s.DiscardSession(sessionID)

	if _, claims, err := s.jwtService.ExtractSessionID(token); err == nil && claims.ExpiresAt != nil {
		ttl := claims.ExpiresAt.Sub(s.now())
		if ttl > 0 {
			if err := s.tokenStore.RevokeSession(ctx, sessionID.String(), ttl); err != nil {
				slog.Warn("revoke session token failed", "session_id", sessionID, "error", err)
			}
		}
	}

	slog.Info("admin signed out", "session_id", sessionID)
	return nil
}

// Authenticate resolves a token to its live session.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.Session, error) {
	sessionID, _, err := s.jwtService.ExtractSessionID(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUnauthorized, err)
	}

	revoked, err := s.tokenStore.IsSessionRevoked(ctx, sessionID.String())
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("%w: session revoked", apperrors.ErrUnauthorized)
	}

	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: session not found", apperrors.ErrUnauthorized)
	}
	return session, nil
}

func (s *authService) DiscardSession(sessionID uuid.UUID) {
	if s.drafts != nil {
		s.drafts.Discard(sessionID)
	}
	metrics.ActiveSessions.Set(float64(s.sessions.Len()))
}
