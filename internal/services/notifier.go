package services

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/calebgil/tandem/internal/models"
	"github.com/calebgil/tandem/internal/notify"
	"github.com/calebgil/tandem/internal/push"
	apperrors "github.com/calebgil/tandem/pkg/errors"
	"github.com/calebgil/tandem/pkg/logger"
)

// Notifier turns domain events into partner notifications. Each trigger
// resolves the recipient, builds the wording, then runs the push send and the
// in-app record write as independent best-effort effects: a dead push
// provider never loses the feed entry, and vice versa.
//
// Triggers swallow their own failures. The exceptions are SendSticker and
// Nudge, which ARE the user's action rather than a side effect of one, so
// precondition failures (not paired, no partner) surface to the caller.
type Notifier struct {
	users         *UserService
	pairs         *PairService
	notifications *NotificationService
	dispatcher    *push.Dispatcher
	log           *zap.Logger
}

// NewNotifier constructs a Notifier.
func NewNotifier(users *UserService, pairs *PairService, notifications *NotificationService, dispatcher *push.Dispatcher) (*Notifier, error) {
	if users == nil || pairs == nil || notifications == nil {
		return nil, errors.New("notifier: users, pairs, and notifications services are required")
	}
	return &Notifier{
		users:         users,
		pairs:         pairs,
		notifications: notifications,
		dispatcher:    dispatcher,
		log:           logger.WithModule("notifier"),
	}, nil
}

// TodoCreated notifies the actor's partner about a new list item.
func (n *Notifier) TodoCreated(ctx context.Context, actorID string, todo *models.Todo) {
	if todo == nil {
		return
	}
	msg := notify.TodoCreatedMessage(n.users.DisplayName(ctx, actorID), *todo)
	n.notifyPartner(ctx, actorID, &todo.PairID, msg, true)
}

// TodoUpdated diffs the item before and after an edit and notifies the
// partner about the most significant change, or nothing when the edit is not
// worth a ping.
func (n *Notifier) TodoUpdated(ctx context.Context, actorID string, before, after *models.Todo) {
	if before == nil || after == nil {
		return
	}
	msg, ok := notify.TodoUpdatedMessage(n.users.DisplayName(ctx, actorID), *before, *after)
	if !ok {
		return
	}
	n.notifyPartner(ctx, actorID, &after.PairID, msg, true)
}

// TodoCompleted notifies the actor's partner that an item was checked off.
func (n *Notifier) TodoCompleted(ctx context.Context, actorID string, todo *models.Todo) {
	if todo == nil {
		return
	}
	msg := notify.TodoCompletedMessage(n.users.DisplayName(ctx, actorID), *todo)
	n.notifyPartner(ctx, actorID, &todo.PairID, msg, true)
}

// TodoDeleted notifies the actor's partner that an item was removed.
func (n *Notifier) TodoDeleted(ctx context.Context, actorID string, todo *models.Todo) {
	if todo == nil {
		return
	}
	msg := notify.TodoDeletedMessage(n.users.DisplayName(ctx, actorID), *todo)
	n.notifyPartner(ctx, actorID, &todo.PairID, msg, true)
}

// TodoDueSoon notifies both pair members that an item is due within the
// reminder window. Driven by the scheduled sweep, not a user action.
func (n *Notifier) TodoDueSoon(ctx context.Context, todo *models.Todo) {
	if todo == nil {
		return
	}
	n.notifyPairMembers(ctx, todo.PairID, notify.TodoDueSoonMessage(*todo))
}

// TodoOverdue notifies both pair members that an item slipped past its due
// date.
func (n *Notifier) TodoOverdue(ctx context.Context, todo *models.Todo) {
	if todo == nil {
		return
	}
	n.notifyPairMembers(ctx, todo.PairID, notify.TodoOverdueMessage(*todo))
}

// FavoriteAdded notifies the actor's partner about a new shared bookmark.
func (n *Notifier) FavoriteAdded(ctx context.Context, actorID string, favorite *models.Favorite) {
	if favorite == nil {
		return
	}
	msg := notify.FavoriteAddedMessage(n.users.DisplayName(ctx, actorID), *favorite)
	n.notifyPartner(ctx, actorID, &favorite.PairID, msg, true)
}

// MoodUpdated notifies the actor's partner about a mood check-in. Private
// entries never leave the actor's device.
func (n *Notifier) MoodUpdated(ctx context.Context, actorID string, mood *models.Mood) {
	if mood == nil || mood.IsPrivate {
		return
	}
	msg := notify.MoodMessage(n.users.DisplayName(ctx, actorID), *mood)
	n.notifyPartner(ctx, actorID, mood.PairID, msg, true)
}

// StickerInput describes one sticker send.
type StickerInput struct {
	Name        string
	Description string
}

// SendSticker delivers a sticker to the partner. Unlike event triggers this
// is the primary action, so missing preconditions surface as errors; delivery
// failures past that point are still best-effort.
func (n *Notifier) SendSticker(ctx context.Context, actorID string, input StickerInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return apperrors.NewBadRequest("sticker name is required")
	}

	actor, err := n.users.Get(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.PairID == nil {
		return apperrors.ErrNotPaired
	}
	partnerID, err := n.pairs.PartnerID(ctx, actorID, actor.PairID)
	if err != nil {
		return err
	}
	if partnerID == "" {
		return apperrors.ErrPartnerNotFound
	}

	msg := notify.StickerMessage(defaultIfEmpty(actor.DisplayName, notify.FallbackActorName), input.Name, input.Description)
	n.deliver(ctx, partnerID, actorID, actor.PairID, msg, true)
	return nil
}

// Nudge pokes the partner. Same contract as SendSticker: precondition errors
// surface, delivery is best-effort.
func (n *Notifier) Nudge(ctx context.Context, actorID string) error {
	actor, err := n.users.Get(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.PairID == nil {
		return apperrors.ErrNotPaired
	}
	partnerID, err := n.pairs.PartnerID(ctx, actorID, actor.PairID)
	if err != nil {
		return err
	}
	if partnerID == "" {
		return apperrors.ErrPartnerNotFound
	}

	msg := notify.NudgeMessage(defaultIfEmpty(actor.DisplayName, notify.FallbackActorName))
	n.deliver(ctx, partnerID, actorID, actor.PairID, msg, true)
	return nil
}

// PairEstablished congratulates both members of a fresh pair. Runs after the
// redemption transaction commits and is not gated by category preferences.
func (n *Notifier) PairEstablished(ctx context.Context, result *RedeemResult) {
	if result == nil || result.Pair == nil {
		return
	}
	pairID := result.Pair.ID

	ownerMsg := notify.PairSuccessMessage(n.users.DisplayName(ctx, result.RedeemerID))
	redeemerMsg := notify.PairSuccessMessage(n.users.DisplayName(ctx, result.OwnerID))

	n.deliver(ctx, result.OwnerID, result.RedeemerID, &pairID, ownerMsg, false)
	n.deliver(ctx, result.RedeemerID, result.OwnerID, &pairID, redeemerMsg, false)
}

// ProfileUpdated tells the partner the actor changed their profile.
func (n *Notifier) ProfileUpdated(ctx context.Context, actorID string) {
	actor, err := n.users.Get(ctx, actorID)
	if err != nil || actor.PairID == nil {
		return
	}
	msg := notify.ProfileUpdatedMessage(defaultIfEmpty(actor.DisplayName, notify.FallbackActorName))
	n.notifyPartner(ctx, actorID, actor.PairID, msg, true)
}

// notifyPartner resolves the actor's partner and delivers to them. Unpaired
// actors and dissolved pairs drop the event silently.
func (n *Notifier) notifyPartner(ctx context.Context, actorID string, pairID *string, msg notify.Message, gated bool) {
	partnerID, err := n.pairs.PartnerID(ctx, actorID, pairID)
	if err != nil {
		n.log.Warn("partner lookup failed", zap.String("actor", actorID), zap.Error(err))
		return
	}
	if partnerID == "" {
		return
	}
	n.deliver(ctx, partnerID, actorID, pairID, msg, gated)
}

// notifyPairMembers delivers the same message to both members of a pair.
func (n *Notifier) notifyPairMembers(ctx context.Context, pairID string, msg notify.Message) {
	pair, err := n.pairs.GetPair(ctx, pairID)
	if err != nil {
		n.log.Warn("pair lookup failed", zap.String("pair", pairID), zap.Error(err))
		return
	}
	for _, memberID := range pair.Participants() {
		n.deliver(ctx, memberID, "", &pairID, msg, true)
	}
}

// deliver runs the push send and the record write concurrently. Gated
// delivery checks the recipient's category preference on the push leg only;
// the in-app record is always written.
func (n *Notifier) deliver(ctx context.Context, recipientID, senderID string, pairID *string, msg notify.Message, gated bool) {
	category := msg.Category
	if !gated {
		category = ""
	}

	var sender *string
	if senderID != "" {
		sender = &senderID
	}

	report := push.RunEffects(ctx,
		push.Effect{
			Name: "push",
			Run: func(ctx context.Context) error {
				n.dispatcher.SendToUser(ctx, recipientID, push.Payload{
					Title: msg.Title,
					Body:  msg.Body,
					Data:  msg.Data,
				}, category)
				return nil
			},
		},
		push.Effect{
			Name: "record",
			Run: func(ctx context.Context) error {
				_, err := n.notifications.Create(ctx, CreateInput{
					RecipientID: recipientID,
					SenderID:    sender,
					PairID:      pairID,
					Category:    msg.Category,
					Title:       msg.Title,
					Body:        msg.Body,
					Data:        msg.Data,
				})
				return err
			},
		},
	)

	if err := report.Err(); err != nil {
		n.log.Warn("notification delivery incomplete",
			zap.String("recipient", recipientID),
			zap.String("category", string(msg.Category)),
			zap.Error(err),
		)
	}
}
