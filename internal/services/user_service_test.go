package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebgil/tandem/internal/database/testutil"
	"github.com/calebgil/tandem/internal/notify"
	apperrors "github.com/calebgil/tandem/pkg/errors"
)

func TestRegisterNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	user, err := svc.Register(testCtx(), RegisterInput{
		Email:       "  Alex@Example.COM ",
		Password:    "hunter22",
		DisplayName: " Alex ",
	})
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", user.Email)
	assert.Equal(t, "Alex", user.DisplayName)
	assert.NotEqual(t, "hunter22", user.Password, "passwords are stored hashed")

	_, err = svc.Register(testCtx(), RegisterInput{Email: "alex@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(testCtx(), RegisterInput{Email: "", Password: "x"})
	require.Error(t, err)
}

func TestAuthenticate(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	_, err = svc.Register(testCtx(), RegisterInput{Email: "alex@example.com", Password: "hunter22"})
	require.NoError(t, err)

	user, err := svc.Authenticate(testCtx(), "ALEX@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", user.Email)

	_, err = svc.Authenticate(testCtx(), "alex@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(testCtx(), "nobody@example.com", "hunter22")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestDisplayNameFallsBack(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	named := createTestUser(t, db, "named@example.com", "Alex")
	unnamed := createTestUser(t, db, "unnamed@example.com", "")

	assert.Equal(t, "Alex", svc.DisplayName(testCtx(), named.ID))
	assert.Equal(t, notify.FallbackActorName, svc.DisplayName(testCtx(), unnamed.ID))
	assert.Equal(t, notify.FallbackActorName, svc.DisplayName(testCtx(), "no-such-user"))
}

func TestUpdateProfileReportsChange(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	user := createTestUser(t, db, "u@example.com", "U")

	same := "U"
	_, changed, err := svc.UpdateProfile(testCtx(), user.ID, ProfilePatch{DisplayName: &same})
	require.NoError(t, err)
	assert.False(t, changed, "writing the current value is not a change")

	name := "Uma"
	avatar := "https://cdn.example.com/uma.png"
	updated, changed, err := svc.UpdateProfile(testCtx(), user.ID, ProfilePatch{DisplayName: &name, AvatarURL: &avatar})
	require.NoError(t, err)
	assert.True(t, changed)

	fresh, err := svc.Get(testCtx(), updated.ID)
	require.NoError(t, err)
	assert.Equal(t, "Uma", fresh.DisplayName)
	assert.Equal(t, avatar, fresh.AvatarURL)
}
