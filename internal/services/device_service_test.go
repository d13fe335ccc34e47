package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebgil/tandem/internal/database/testutil"
)

func TestRegisterDeviceUpsertsByToken(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewDeviceService(db)
	require.NoError(t, err)

	a := createTestUser(t, db, "a@example.com", "A")
	b := createTestUser(t, db, "b@example.com", "B")

	_, err = svc.Register(testCtx(), a.ID, "token-1", "ios")
	require.NoError(t, err)

	// Same token registered by another user moves, it does not duplicate.
	_, err = svc.Register(testCtx(), b.ID, "token-1", "android")
	require.NoError(t, err)

	aTokens, err := svc.ActiveTokens(testCtx(), a.ID)
	require.NoError(t, err)
	assert.Empty(t, aTokens)

	bTokens, err := svc.ActiveTokens(testCtx(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"token-1"}, bTokens)
}

func TestRegisterDeviceRejectsEmptyToken(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewDeviceService(db)
	require.NoError(t, err)

	user := createTestUser(t, db, "u@example.com", "U")
	_, err = svc.Register(testCtx(), user.ID, "   ", "ios")
	require.Error(t, err)
}

func TestRemoveTokensTargetsOnlyGivenTokens(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewDeviceService(db)
	require.NoError(t, err)

	user := createTestUser(t, db, "u@example.com", "U")
	for _, token := range []string{"keep", "dead-1", "dead-2"} {
		_, err := svc.Register(testCtx(), user.ID, token, "ios")
		require.NoError(t, err)
	}

	require.NoError(t, svc.RemoveTokens(testCtx(), user.ID, []string{"dead-1", "dead-2", "already-gone"}))

	tokens, err := svc.ActiveTokens(testCtx(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, tokens)

	// Empty input is a no-op.
	require.NoError(t, svc.RemoveTokens(testCtx(), user.ID, nil))
}

func TestPruneStaleDevices(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewDeviceService(db)
	require.NoError(t, err)

	user := createTestUser(t, db, "u@example.com", "U")

	current := time.Now().UTC()
	svc.now = func() time.Time { return current.Add(-100 * 24 * time.Hour) }
	_, err = svc.Register(testCtx(), user.ID, "ancient", "ios")
	require.NoError(t, err)

	svc.now = func() time.Time { return current }
	_, err = svc.Register(testCtx(), user.ID, "fresh", "ios")
	require.NoError(t, err)

	removed, err := svc.PruneStale(testCtx(), current.Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	tokens, err := svc.ActiveTokens(testCtx(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, tokens)
}
