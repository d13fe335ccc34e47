package push

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEffectsAllSucceed(t *testing.T) {
	var ran atomic.Int32

	report := RunEffects(context.Background(),
		Effect{Name: "one", Run: func(context.Context) error { ran.Add(1); return nil }},
		Effect{Name: "two", Run: func(context.Context) error { ran.Add(1); return nil }},
	)

	assert.Equal(t, int32(2), ran.Load())
	assert.NoError(t, report.Err())
	assert.Zero(t, report.Failed())
}

func TestRunEffectsOneFailureDoesNotCancelSiblings(t *testing.T) {
	var sibling atomic.Bool

	report := RunEffects(context.Background(),
		Effect{Name: "broken", Run: func(context.Context) error { return errors.New("boom") }},
		Effect{Name: "healthy", Run: func(context.Context) error { sibling.Store(true); return nil }},
	)

	assert.True(t, sibling.Load())
	assert.Equal(t, 1, report.Failed())
	require.Error(t, report.Err())
	assert.Contains(t, report.Err().Error(), "broken")
}

func TestRunEffectsRecoversPanics(t *testing.T) {
	report := RunEffects(context.Background(),
		Effect{Name: "panicky", Run: func(context.Context) error { panic("surprise") }},
		Effect{Name: "calm", Run: func(context.Context) error { return nil }},
	)

	require.Equal(t, 1, report.Failed())
	assert.Contains(t, report.Err().Error(), "panic")
}
