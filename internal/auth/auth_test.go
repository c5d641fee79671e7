package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	sessionID := uuid.New()

	token, expiresAt, err := svc.GenerateSessionToken(sessionID, "admin@easyfindshub.com", true)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	gotID, claims, err := svc.ExtractSessionID(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, gotID)
	assert.Equal(t, "admin@easyfindshub.com", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, _, err := issuer.GenerateSessionToken(uuid.New(), "admin@easyfindshub.com", true)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.GenerateSessionToken(uuid.New(), "admin@easyfindshub.com", true)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestSessionStore_Lifecycle(t *testing.T) {
	store := NewSessionStore()

	session := store.Create(uuid.New(), "admin@easyfindshub.com", true, time.Now().Add(time.Hour))
	got, ok := store.Get(session.ID)
	require.True(t, ok)
	assert.Equal(t, session.Email, got.Email)
	assert.True(t, got.IsAdmin)
	assert.Equal(t, 1, store.Len())

	store.Delete(session.ID)
	_, ok = store.Get(session.ID)
	assert.False(t, ok)

	store.Delete(session.ID)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_ExpiredSessionIsDropped(t *testing.T) {
	store := NewSessionStore()
	session := store.Create(uuid.New(), "admin@easyfindshub.com", true, time.Now().Add(time.Minute))

	store.now = func() time.Time { return time.Now().Add(time.Hour) }

	_, ok := store.Get(session.ID)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestSessionStore_CreateReturnsCopy(t *testing.T) {
	store := NewSessionStore()
	expiresAt := time.Now().Add(time.Hour)
	session := store.Create(uuid.New(), "admin@easyfindshub.com", true, expiresAt)

	session.ExpiresAt = time.Time{}

	got, ok := store.Get(session.ID)
	require.True(t, ok)
	assert.Equal(t, expiresAt, got.ExpiresAt)
}

func TestSessionStore_Sweep(t *testing.T) {
	store := NewSessionStore()
	short := store.Create(uuid.New(), "a@b.com", true, time.Now().Add(time.Minute))
	long := store.Create(uuid.New(), "c@d.com", true, time.Now().Add(2*time.Hour))

	var evicted []uuid.UUID
	store.onEvict = func(id uuid.UUID) { evicted = append(evicted, id) }
	store.now = func() time.Time { return time.Now().Add(time.Hour) }

	assert.Equal(t, []uuid.UUID{short.ID}, store.Sweep())
	assert.Equal(t, []uuid.UUID{short.ID}, evicted)
	assert.Equal(t, 1, store.Len())
	_, ok := store.Get(long.ID)
	assert.True(t, ok)

	assert.Empty(t, store.Sweep())
}

func TestSessionStore_GetNotifiesEviction(t *testing.T) {
	store := NewSessionStore()
	session := store.Create(uuid.New(), "a@b.com", true, time.Now().Add(time.Minute))

	var evicted []uuid.UUID
	store.onEvict = func(id uuid.UUID) { evicted = append(evicted, id) }
	store.now = func() time.Time { return time.Now().Add(time.Hour) }

	_, ok := store.Get(session.ID)
	assert.False(t, ok)
	assert.Equal(t, []uuid.UUID{session.ID}, evicted)
}

func TestSessionStore_JanitorEvictsExpiredSessions(t *testing.T) {
	store := NewSessionStore()
	session := store.Create(uuid.New(), "admin@easyfindshub.com", true, time.Now().Add(-time.Second))
	store.Create(uuid.New(), "c@d.com", true, time.Now().Add(time.Hour))

	evicted := make(chan uuid.UUID, 1)
	store.StartJanitor(10*time.Millisecond, func(id uuid.UUID) { evicted <- id })
	defer store.Close()

	select {
	case id := <-evicted:
		assert.Equal(t, session.ID, id)
	case <-time.After(2 * time.Second):
		t.Fatal("expired session was not evicted")
	}
	assert.Equal(t, 1, store.Len())
}

func TestJWTService_SessionIDIgnoringExpiry(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	sessionID := uuid.New()
	token, _, err := svc.GenerateSessionToken(sessionID, "admin@easyfindshub.com", true)
	require.NoError(t, err)
	svc.now = time.Now

	_, _, err = svc.ExtractSessionID(token)
	require.Error(t, err)

	got, err := svc.SessionIDIgnoringExpiry(token)
	require.NoError(t, err)
	assert.Equal(t, sessionID, got)

	_, err = NewJWTService("other-secret", time.Minute).SessionIDIgnoringExpiry(token)
	assert.Error(t, err)
}

func TestSessionStore_Close(t *testing.T) {
	store := NewSessionStore()
	store.Create(uuid.New(), "a@b.com", true, time.Now().Add(time.Hour))
	store.Create(uuid.New(), "c@d.com", true, time.Now().Add(time.Hour))

	store.Close()

	assert.Equal(t, 0, store.Len())
}

func TestTokenStore_NilCacheNeverRevokes(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	require.NoError(t, store.RevokeSession(ctx, "abc", time.Minute))
	revoked, err := store.IsSessionRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}
