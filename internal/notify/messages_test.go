package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebgil/tandem/internal/models"
)

func TestTodoCreatedMessageWording(t *testing.T) {
	task := models.Todo{Title: "Buy flowers", ListType: models.ListTypeTodo}
	msg := TodoCreatedMessage("Alex", task)
	assert.Equal(t, CategoryTodoReminder, msg.Category)
	assert.Equal(t, "New Task Added", msg.Title)
	assert.Equal(t, `Alex added a new task: "Buy flowers"`, msg.Body)

	dream := models.Todo{Title: "Visit Japan", ListType: models.ListTypeDream}
	msg = TodoCreatedMessage("Alex", dream)
	assert.Equal(t, CategoryDreamCreated, msg.Category)
	assert.Contains(t, msg.Title, "New Dream Added")
	assert.Contains(t, msg.Body, "Visit Japan")
}

func TestTodoCompletedMessageDreamWording(t *testing.T) {
	dream := models.Todo{Title: "Run a marathon", ListType: models.ListTypeDream}
	msg := TodoCompletedMessage("Sam", dream)
	assert.Equal(t, CategoryDreamCompleted, msg.Category)
	assert.Contains(t, msg.Title, "Dream Achieved")
}

func TestTodoUpdatedMessageSilentCases(t *testing.T) {
	base := models.Todo{Title: "Laundry", ListType: models.ListTypeTodo}

	_, ok := TodoUpdatedMessage("Alex", base, base)
	assert.False(t, ok, "identical snapshots stay silent")

	after := base
	after.Subtasks = []byte(`[{"title":"whites"}]`)
	_, ok = TodoUpdatedMessage("Alex", base, after)
	assert.False(t, ok, "subtasks-only edits stay silent")
}

func TestTodoUpdatedMessageCompletionWinsOverTitle(t *testing.T) {
	before := models.Todo{Title: "Laundry"}
	after := models.Todo{Title: "Do the laundry", IsCompleted: true}

	msg, ok := TodoUpdatedMessage("Alex", before, after)
	require.True(t, ok)
	assert.Equal(t, CategoryTodoCompleted, msg.Category)
}

func TestTodoUpdatedMessageTitleChange(t *testing.T) {
	before := models.Todo{Title: "Laundry"}
	after := models.Todo{Title: "Do the laundry"}

	msg, ok := TodoUpdatedMessage("Alex", before, after)
	require.True(t, ok)
	assert.Equal(t, CategoryTodoUpdated, msg.Category)
	assert.Contains(t, msg.Body, `renamed "Laundry" to "Do the laundry"`)
}

func TestTodoUpdatedMessageDueDateChange(t *testing.T) {
	due := time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC)
	before := models.Todo{Title: "Laundry"}
	after := models.Todo{Title: "Laundry", DueDate: &due}

	msg, ok := TodoUpdatedMessage("Alex", before, after)
	require.True(t, ok)
	assert.Contains(t, msg.Title, "Due Date Changed")
	assert.Contains(t, msg.Body, "Apr 1")

	// Removing the due date names the actor instead.
	msg, ok = TodoUpdatedMessage("Alex", after, before)
	require.True(t, ok)
	assert.Contains(t, msg.Body, "removed the due date")
}

func TestTodoUpdatedMessageReopenedAfterPriority(t *testing.T) {
	before := models.Todo{Title: "Laundry", IsCompleted: true, Priority: "low"}
	after := models.Todo{Title: "Laundry", IsCompleted: false, Priority: "high"}

	// Priority outranks reopening in the priority order.
	msg, ok := TodoUpdatedMessage("Alex", before, after)
	require.True(t, ok)
	assert.Contains(t, msg.Title, "Priority Changed")

	after.Priority = "low"
	msg, ok = TodoUpdatedMessage("Alex", before, after)
	require.True(t, ok)
	assert.Contains(t, msg.Title, "Reopened")
}

func TestStickerMessageOptionalDescription(t *testing.T) {
	msg := StickerMessage("Alex", "bear hug", "")
	assert.Equal(t, `Alex sent you "bear hug"`, msg.Body)

	msg = StickerMessage("Alex", "bear hug", "thinking of you")
	assert.Contains(t, msg.Body, "thinking of you")
}

func TestMoodMessageScale(t *testing.T) {
	msg := MoodMessage("Alex", models.Mood{Level: 5})
	assert.Contains(t, msg.Body, "amazing")

	// Out-of-range levels fall back to the neutral wording.
	msg = MoodMessage("Alex", models.Mood{Level: 42})
	assert.Contains(t, msg.Body, "okay")
}
