package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"easyfindshub/internal/auth"
	apperrors "easyfindshub/internal/errors"
)

const (
	testAdminEmail    = "admin@easyfindshub.com"
	testAdminPassword = "admin123"
)

func newTestAuthService(t *testing.T, tokens *MockTokenStore, drafts *MockDraftDiscarder) (AuthService, *auth.SessionStore) {
	t.Helper()
	sessions := auth.NewSessionStore()
	svc, err := NewAuthService(testAdminEmail, testAdminPassword, sessions, auth.NewJWTService("test-secret", time.Hour), tokens, drafts)
	require.NoError(t, err)
	return svc, sessions
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		expectedError error
	}{
		{name: "admin credential", email: testAdminEmail, password: testAdminPassword},
		{name: "missing at sign", email: "admin.easyfindshub.com", password: testAdminPassword, expectedError: apperrors.ErrInvalidFormat},
		{name: "missing tld", email: "admin@easyfindshub", password: testAdminPassword, expectedError: apperrors.ErrInvalidFormat},
		{name: "whitespace in local part", email: "ad min@easyfindshub.com", password: testAdminPassword, expectedError: apperrors.ErrInvalidFormat},
		{name: "empty email", email: "", password: testAdminPassword, expectedError: apperrors.ErrInvalidFormat},
		{name: "format checked before length", email: "nope", password: "123", expectedError: apperrors.ErrInvalidFormat},
		{name: "five character password", email: testAdminEmail, password: "admin", expectedError: apperrors.ErrWeakCredential},
		{name: "length checked before pair", email: "other@easyfindshub.com", password: "abc", expectedError: apperrors.ErrWeakCredential},
		{name: "wrong password", email: testAdminEmail, password: "admin1234", expectedError: apperrors.ErrAuthenticationFailed},
		{name: "wrong email", email: "editor@easyfindshub.com", password: testAdminPassword, expectedError: apperrors.ErrAuthenticationFailed},
		{name: "email is case sensitive", email: "Admin@easyfindshub.com", password: testAdminPassword, expectedError: apperrors.ErrAuthenticationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, sessions := newTestAuthService(t, new(MockTokenStore), new(MockDraftDiscarder))

			session, token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, session)
				assert.Empty(t, token)
				assert.Equal(t, 0, sessions.Len())
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			assert.Equal(t, tt.email, session.Email)
			assert.True(t, session.IsAdmin)
			assert.Equal(t, 1, sessions.Len())
		})
	}
}

func TestAuthService_AuthenticateAfterLogin(t *testing.T) {
	tokens := new(MockTokenStore)
	svc, _ := newTestAuthService(t, tokens, new(MockDraftDiscarder))

	session, token, err := svc.Login(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	tokens.On("IsSessionRevoked", mock.Anything, session.ID.String()).Return(false, nil)

	got, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, got.ID)
	assert.True(t, got.IsAdmin)
	tokens.AssertExpectations(t)
}

func TestAuthService_Logout(t *testing.T) {
	tokens := new(MockTokenStore)
	drafts := new(MockDraftDiscarder)
	svc, sessions := newTestAuthService(t, tokens, drafts)

	session, token, err := svc.Login(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)

	tokens.On("RevokeSession", mock.Anything, session.ID.String(), mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 0 && ttl <= time.Hour
	})).Return(nil)
	tokens.On("IsSessionRevoked", mock.Anything, session.ID.String()).Return(false, nil)
	drafts.On("Discard", session.ID).Return()

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.Equal(t, 0, sessions.Len())

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	tokens.AssertExpectations(t)
	drafts.AssertExpectations(t)
}

func TestAuthService_LogoutAlwaysSucceeds(t *testing.T) {
	tokens := new(MockTokenStore)
	drafts := new(MockDraftDiscarder)
	svc, _ := newTestAuthService(t, tokens, drafts)

	assert.NoError(t, svc.Logout(context.Background(), "not-a-token"))
	assert.NoError(t, svc.Logout(context.Background(), ""))

	tokens.AssertNotCalled(t, "RevokeSession", mock.Anything, mock.Anything, mock.Anything)
	drafts.AssertNotCalled(t, "Discard", mock.Anything)
}

func TestAuthService_LogoutWithExpiredTokenEndsSession(t *testing.T) {
	tokens := new(MockTokenStore)
	drafts := new(MockDraftDiscarder)
	svc, sessions := newTestAuthService(t, tokens, drafts)

	sessionID := uuid.New()
	sessions.Create(sessionID, testAdminEmail, true, time.Now().Add(-time.Minute))
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		Email:   testAdminEmail,
		IsAdmin: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	token, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	drafts.On("Discard", sessionID).Return()

	_, err = svc.Authenticate(context.Background(), token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	require.NoError(t, svc.Logout(context.Background(), token))
	assert.Equal(t, 0, sessions.Len())
	drafts.AssertExpectations(t)
	tokens.AssertNotCalled(t, "RevokeSession", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_DiscardSessionOnEviction(t *testing.T) {
	drafts := new(MockDraftDiscarder)
	svc, sessions := newTestAuthService(t, new(MockTokenStore), drafts)

	session, _, err := svc.Login(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	drafts.On("Discard", session.ID).Return()

	sessions.Delete(session.ID)
	svc.DiscardSession(session.ID)

	drafts.AssertExpectations(t)
}

func TestAuthService_LogoutIgnoresRevocationFailure(t *testing.T) {
	tokens := new(MockTokenStore)
	drafts := new(MockDraftDiscarder)
	svc, _ := newTestAuthService(t, tokens, drafts)

	session, token, err := svc.Login(context.Background(), testAdminEmail, testAdminPassword)
	require.NoError(t, err)
	tokens.On("RevokeSession", mock.Anything, session.ID.String(), mock.Anything).Return(assert.AnError)
	drafts.On("Discard", session.ID).Return()

	assert.NoError(t, svc.Logout(context.Background(), token))
}

func TestAuthService_Authenticate(t *testing.T) {
	t.Run("rejects garbage token", func(t *testing.T) {
		svc, _ := newTestAuthService(t, new(MockTokenStore), new(MockDraftDiscarder))
		_, err := svc.Authenticate(context.Background(), "garbage")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("rejects revoked session", func(t *testing.T) {
		tokens := new(MockTokenStore)
		svc, _ := newTestAuthService(t, tokens, new(MockDraftDiscarder))
		session, token, err := svc.Login(context.Background(), testAdminEmail, testAdminPassword)
		require.NoError(t, err)
		tokens.On("IsSessionRevoked", mock.Anything, session.ID.String()).Return(true, nil)

		_, err = svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("rejects token whose session is gone", func(t *testing.T) {
		tokens := new(MockTokenStore)
		svc, sessions := newTestAuthService(t, tokens, new(MockDraftDiscarder))
		session, token, err := svc.Login(context.Background(), testAdminEmail, testAdminPassword)
		require.NoError(t, err)
		tokens.On("IsSessionRevoked", mock.Anything, session.ID.String()).Return(false, nil)

		sessions.Close()

		_, err = svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}
