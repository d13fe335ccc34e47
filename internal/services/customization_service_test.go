package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebgil/tandem/internal/database/testutil"
	"github.com/calebgil/tandem/internal/notify"
)

func TestCustomizationDefaultsForFreshUser(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewCustomizationService(db)
	require.NoError(t, err)

	user := createTestUser(t, db, "u@example.com", "U")

	custom, err := svc.Get(testCtx(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, custom.ActivePreset)
	assert.Equal(t, notify.PresetDefault, *custom.ActivePreset)
}

func TestApplyPresetPersistsWholesale(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewCustomizationService(db)
	require.NoError(t, err)

	user := createTestUser(t, db, "u@example.com", "U")

	applied, err := svc.ApplyPreset(testCtx(), user.ID, notify.PresetMidnight)
	require.NoError(t, err)
	require.NotNil(t, applied.ActivePreset)
	assert.Equal(t, notify.PresetMidnight, *applied.ActivePreset)

	stored, err := svc.Get(testCtx(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, applied, stored)

	_, err = svc.ApplyPreset(testCtx(), user.ID, "neon-dreams")
	require.Error(t, err, "unknown presets are rejected")
}

func TestManualEditClearsActivePreset(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewCustomizationService(db)
	require.NoError(t, err)

	user := createTestUser(t, db, "u@example.com", "U")
	_, err = svc.ApplyPreset(testCtx(), user.ID, notify.PresetVibrant)
	require.NoError(t, err)

	style := notify.StyleGradient
	custom, err := svc.Update(testCtx(), user.ID, notify.CustomizationPatch{VisualStyle: &style})
	require.NoError(t, err)
	assert.Nil(t, custom.ActivePreset)

	stored, err := svc.Get(testCtx(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.ActivePreset)
	assert.Equal(t, notify.StyleGradient, stored.VisualStyle)
}

func TestGroupStyleOverrideResolvesPerCategory(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewCustomizationService(db)
	require.NoError(t, err)

	user := createTestUser(t, db, "u@example.com", "U")

	_, err = svc.UpdateGroupStyle(testCtx(), user.ID, "todos", notify.StyleGlassmorphic)
	require.NoError(t, err)

	style, err := svc.StyleForCategory(testCtx(), user.ID, notify.CategoryTodoReminder)
	require.NoError(t, err)
	assert.Equal(t, notify.StyleGlassmorphic, style)

	style, err = svc.StyleForCategory(testCtx(), user.ID, notify.CategoryMoodUpdated)
	require.NoError(t, err)
	assert.Equal(t, notify.StyleSolid, style)

	_, err = svc.UpdateGroupStyle(testCtx(), user.ID, "todos", notify.VisualStyle("sparkly"))
	require.Error(t, err, "unknown styles are rejected")
}

func TestGroupColorsOverrideResolvesPerCategory(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewCustomizationService(db)
	require.NoError(t, err)

	user := createTestUser(t, db, "u@example.com", "U")

	background := "#101010"
	_, err = svc.UpdateGroupColors(testCtx(), user.ID, "stickers", notify.ColorSetPatch{Background: &background})
	require.NoError(t, err)

	colors, err := svc.ColorsForCategory(testCtx(), user.ID, notify.CategoryStickerSent)
	require.NoError(t, err)
	assert.Equal(t, "#101010", colors.Background)
}

func TestCustomizationReset(t *testing.T) {
	db := testutil.MustOpenTestDB(t)
	svc, err := NewCustomizationService(db)
	require.NoError(t, err)

	user := createTestUser(t, db, "u@example.com", "U")
	_, err = svc.ApplyPreset(testCtx(), user.ID, notify.PresetSunset)
	require.NoError(t, err)

	custom, err := svc.Reset(testCtx(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, custom.ActivePreset)
	assert.Equal(t, notify.PresetDefault, *custom.ActivePreset)
}
