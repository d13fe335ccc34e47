package notify

import (
	"fmt"
	"time"

	"github.com/calebgil/tandem/internal/models"
)

// Message is the rendered content for one notification: the in-app record and
// the push payload share it.
type Message struct {
	Category Category
	Title    string
	Body     string
	Data     map[string]string
}

// FallbackActorName labels the sender when a display name is missing.
const FallbackActorName = "Your partner"

// TodoCreatedMessage renders the creation notice, with dream-specific wording
// when the item lives on the dream list.
func TodoCreatedMessage(actor string, todo models.Todo) Message {
	if todo.ListType == models.ListTypeDream {
		return Message{
			Category: CategoryDreamCreated,
			Title:    "✨ New Dream Added",
			Body:     fmt.Sprintf("%s added a new dream: \"%s\"", actor, todo.Title),
			Data:     todoData(todo, "created"),
		}
	}
	return Message{
		Category: CategoryTodoReminder,
		Title:    "New Task Added",
		Body:     fmt.Sprintf("%s added a new task: \"%s\"", actor, todo.Title),
		Data:     todoData(todo, "created"),
	}
}

// TodoCompletedMessage renders the completion notice.
func TodoCompletedMessage(actor string, todo models.Todo) Message {
	if todo.ListType == models.ListTypeDream {
		return Message{
			Category: CategoryDreamCompleted,
			Title:    "🌟 Dream Achieved!",
			Body:     fmt.Sprintf("%s achieved a dream: \"%s\"", actor, todo.Title),
			Data:     todoData(todo, "completed"),
		}
	}
	return Message{
		Category: CategoryTodoCompleted,
		Title:    "✅ Task Completed",
		Body:     fmt.Sprintf("%s completed \"%s\"", actor, todo.Title),
		Data:     todoData(todo, "completed"),
	}
}

// TodoDeletedMessage renders the removal notice.
func TodoDeletedMessage(actor string, todo models.Todo) Message {
	return Message{
		Category: CategoryTodoDeleted,
		Title:    "🗑️ Task Removed",
		Body:     fmt.Sprintf("%s removed \"%s\"", actor, todo.Title),
		Data:     todoData(todo, "deleted"),
	}
}

// TodoDueSoonMessage renders the due-within-the-hour reminder.
func TodoDueSoonMessage(todo models.Todo) Message {
	return Message{
		Category: CategoryTodoDueSoon,
		Title:    "⏰ Due Soon",
		Body:     fmt.Sprintf("\"%s\" is due within the next hour", todo.Title),
		Data:     todoData(todo, "due_soon"),
	}
}

// TodoOverdueMessage renders the past-due notice.
func TodoOverdueMessage(todo models.Todo) Message {
	return Message{
		Category: CategoryTodoOverdue,
		Title:    "⚠️ Overdue",
		Body:     fmt.Sprintf("\"%s\" is past its due date", todo.Title),
		Data:     todoData(todo, "overdue"),
	}
}

// TodoUpdatedMessage compares before/after snapshots and renders the single
// most relevant change, in a fixed priority order. It returns false when the
// update should not notify at all: a subtasks-only edit (spam prevention) or
// two identical snapshots.
func TodoUpdatedMessage(actor string, before, after models.Todo) (Message, bool) {
	completionOn := !before.IsCompleted && after.IsCompleted
	completionOff := before.IsCompleted && !after.IsCompleted
	titleChanged := before.Title != after.Title
	dueChanged := !equalTimePtr(before.DueDate, after.DueDate)
	priorityChanged := before.Priority != after.Priority
	categoryChanged := before.Category != after.Category
	descriptionChanged := before.Description != after.Description

	anyOther := completionOn || completionOff || titleChanged || dueChanged ||
		priorityChanged || categoryChanged || descriptionChanged

	if !anyOther {
		// Either a pure subtasks edit or an identical write; both stay silent.
		return Message{}, false
	}

	switch {
	case completionOn:
		return TodoCompletedMessage(actor, after), true
	case titleChanged:
		return Message{
			Category: CategoryTodoUpdated,
			Title:    "✏️ Task Renamed",
			Body:     fmt.Sprintf("%s renamed \"%s\" to \"%s\"", actor, before.Title, after.Title),
			Data:     todoData(after, "renamed"),
		}, true
	case dueChanged:
		body := fmt.Sprintf("%s removed the due date from \"%s\"", actor, after.Title)
		if after.DueDate != nil {
			body = fmt.Sprintf("\"%s\" is now due %s", after.Title, after.DueDate.Format("Jan 2, 15:04"))
		}
		return Message{
			Category: CategoryTodoUpdated,
			Title:    "📅 Due Date Changed",
			Body:     body,
			Data:     todoData(after, "due_date_changed"),
		}, true
	case priorityChanged:
		return Message{
			Category: CategoryTodoUpdated,
			Title:    "⚡ Priority Changed",
			Body:     fmt.Sprintf("%s set \"%s\" to %s priority", actor, after.Title, after.Priority),
			Data:     todoData(after, "priority_changed"),
		}, true
	case completionOff:
		return Message{
			Category: CategoryTodoUpdated,
			Title:    "↩️ Task Reopened",
			Body:     fmt.Sprintf("%s reopened \"%s\"", actor, after.Title),
			Data:     todoData(after, "reopened"),
		}, true
	case categoryChanged && after.ListType == models.ListTypeDream:
		return Message{
			Category: CategoryTodoUpdated,
			Title:    "🗂️ Dream Recategorized",
			Body:     fmt.Sprintf("%s moved \"%s\" to %s", actor, after.Title, after.Category),
			Data:     todoData(after, "category_changed"),
		}, true
	default:
		return Message{
			Category: CategoryTodoUpdated,
			Title:    "Task Updated",
			Body:     fmt.Sprintf("%s updated \"%s\"", actor, after.Title),
			Data:     todoData(after, "updated"),
		}, true
	}
}

// FavoriteAddedMessage renders the shared-favorite notice.
func FavoriteAddedMessage(actor string, favorite models.Favorite) Message {
	return Message{
		Category: CategoryFavoriteAdded,
		Title:    "💖 New Favorite",
		Body:     fmt.Sprintf("%s added \"%s\" to your favorites", actor, favorite.Title),
		Data: map[string]string{
			"favorite_id": favorite.ID,
		},
	}
}

// StickerMessage renders the sticker delivery notice.
func StickerMessage(actor, stickerName, description string) Message {
	body := fmt.Sprintf("%s sent you \"%s\"", actor, stickerName)
	if description != "" {
		body = fmt.Sprintf("%s sent you \"%s\": %s", actor, stickerName, description)
	}
	return Message{
		Category: CategoryStickerSent,
		Title:    "🎁 New Sticker",
		Body:     body,
		Data: map[string]string{
			"sticker_name": stickerName,
		},
	}
}

// moodScale maps the five mood levels onto emoji and wording.
var moodScale = map[int]struct {
	Emoji string
	Label string
}{
	1: {"😢", "really down"},
	2: {"😕", "a bit low"},
	3: {"😐", "okay"},
	4: {"🙂", "good"},
	5: {"😄", "amazing"},
}

// MoodMessage renders the partner mood notice. Callers filter private moods
// before reaching here.
func MoodMessage(actor string, mood models.Mood) Message {
	scale, ok := moodScale[mood.Level]
	if !ok {
		scale = moodScale[3]
	}
	return Message{
		Category: CategoryMoodUpdated,
		Title:    "Mood Update",
		Body:     fmt.Sprintf("%s %s is feeling %s", scale.Emoji, actor, scale.Label),
		Data: map[string]string{
			"mood_id": mood.ID,
		},
	}
}

// PairSuccessMessage renders the post-redeem notice sent to both participants.
func PairSuccessMessage(partnerName string) Message {
	return Message{
		Category: CategoryPairSuccess,
		Title:    "💑 Paired!",
		Body:     fmt.Sprintf("You are now connected with %s", partnerName),
		Data:     map[string]string{},
	}
}

// ProfileUpdatedMessage renders the partner profile-change notice.
func ProfileUpdatedMessage(actor string) Message {
	return Message{
		Category: CategoryProfileUpdated,
		Title:    "Profile Updated",
		Body:     fmt.Sprintf("%s updated their profile", actor),
		Data:     map[string]string{},
	}
}

// NudgeMessage renders the think-of-you nudge.
func NudgeMessage(actor string) Message {
	return Message{
		Category: CategoryNudge,
		Title:    "👋 Nudge",
		Body:     fmt.Sprintf("%s is thinking of you", actor),
		Data:     map[string]string{},
	}
}

func todoData(todo models.Todo, event string) map[string]string {
	return map[string]string{
		"todo_id":   todo.ID,
		"list_type": todo.ListType,
		"event":     event,
	}
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
