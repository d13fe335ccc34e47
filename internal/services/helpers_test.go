package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/calebgil/tandem/internal/models"
)

func createTestUser(t *testing.T, db *gorm.DB, email, displayName string) *models.User {
	t.Helper()

	user := &models.User{
		Email:       email,
		Password:    "x",
		DisplayName: displayName,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func pairTestUsers(t *testing.T, db *gorm.DB, a, b *models.User) *models.Pair {
	t.Helper()

	pair := &models.Pair{
		ParticipantA: a.ID,
		ParticipantB: b.ID,
		Status:       models.PairStatusActive,
	}
	require.NoError(t, db.Create(pair).Error)
	require.NoError(t, db.Model(&models.User{}).
		Where("id IN ?", []string{a.ID, b.ID}).
		Update("pair_id", pair.ID).Error)

	a.PairID = &pair.ID
	b.PairID = &pair.ID
	return pair
}

func testCtx() context.Context {
	return context.Background()
}
