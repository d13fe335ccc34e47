package notify

// Category enumerates every notification kind the app can emit. The set is
// closed: adding a category means extending the switches below, which the
// compiler checks via the exhaustive default-free style used here.
type Category string

const (
	CategoryNudge          Category = "nudge"
	CategoryStickerSent    Category = "sticker_sent"
	CategoryFavoriteAdded  Category = "favorite_added"
	CategoryTodoReminder   Category = "todo_reminder"
	CategoryTodoUpdated    Category = "todo_updated"
	CategoryTodoCompleted  Category = "todo_completed"
	CategoryTodoDueSoon    Category = "todo_due_soon"
	CategoryTodoOverdue    Category = "todo_overdue"
	CategoryTodoDeleted    Category = "todo_deleted"
	CategoryDreamCreated   Category = "dream_created"
	CategoryDreamCompleted Category = "dream_completed"
	CategoryMoodUpdated    Category = "mood_updated"
	CategoryPairSuccess    Category = "pair_success"
	CategoryProfileUpdated Category = "profile_updated"
	CategoryOther          Category = "other"
)

// AllCategories lists every known category, used for settings payloads and tests.
func AllCategories() []Category {
	return []Category{
		CategoryNudge,
		CategoryStickerSent,
		CategoryFavoriteAdded,
		CategoryTodoReminder,
		CategoryTodoUpdated,
		CategoryTodoCompleted,
		CategoryTodoDueSoon,
		CategoryTodoOverdue,
		CategoryTodoDeleted,
		CategoryDreamCreated,
		CategoryDreamCompleted,
		CategoryMoodUpdated,
		CategoryPairSuccess,
		CategoryProfileUpdated,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryNudge, CategoryStickerSent, CategoryFavoriteAdded,
		CategoryTodoReminder, CategoryTodoUpdated, CategoryTodoCompleted,
		CategoryTodoDueSoon, CategoryTodoOverdue, CategoryTodoDeleted,
		CategoryDreamCreated, CategoryDreamCompleted,
		CategoryMoodUpdated, CategoryPairSuccess, CategoryProfileUpdated,
		CategoryOther:
		return true
	}
	return false
}

// PreferenceFlag names the per-category preference toggle governing c.
// Categories without a dedicated toggle (pairing, profile, other) report "",
// meaning only the master switch applies.
func (c Category) PreferenceFlag() string {
	switch c {
	case CategoryNudge:
		return "nudge_notifications"
	case CategoryStickerSent:
		return "sticker_notifications"
	case CategoryFavoriteAdded:
		return "favorite_updates"
	case CategoryTodoReminder, CategoryTodoUpdated, CategoryTodoCompleted,
		CategoryTodoDueSoon, CategoryTodoOverdue, CategoryTodoDeleted,
		CategoryDreamCreated, CategoryDreamCompleted:
		return "todo_reminders"
	case CategoryMoodUpdated:
		return "mood_updates"
	case CategoryPairSuccess, CategoryProfileUpdated:
		return "pair_events"
	case CategoryOther:
		return ""
	}
	return ""
}

// StyleGroup collapses the closed set into the buckets the customization UI
// exposes (one colour set per group rather than per category).
func (c Category) StyleGroup() string {
	switch c {
	case CategoryNudge:
		return "nudges"
	case CategoryStickerSent:
		return "stickers"
	case CategoryFavoriteAdded:
		return "favorites"
	case CategoryTodoReminder, CategoryTodoUpdated, CategoryTodoCompleted,
		CategoryTodoDueSoon, CategoryTodoOverdue, CategoryTodoDeleted:
		return "todos"
	case CategoryDreamCreated, CategoryDreamCompleted:
		return "dreams"
	case CategoryMoodUpdated:
		return "moods"
	case CategoryPairSuccess, CategoryProfileUpdated:
		return "pairing"
	case CategoryOther:
		return "general"
	}
	return "general"
}
