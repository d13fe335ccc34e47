package push

import (
	"context"

	"go.uber.org/zap"

	"github.com/calebgil/tandem/internal/notify"
	"github.com/calebgil/tandem/pkg/logger"
	"github.com/calebgil/tandem/pkg/metrics"
)

// CategoryGate answers whether a recipient accepts notifications of a category.
type CategoryGate interface {
	IsCategoryAllowed(ctx context.Context, uid string, category notify.Category) bool
}

// TokenStore lists and prunes a user's registered device tokens.
type TokenStore interface {
	ActiveTokens(ctx context.Context, uid string) ([]string, error)
	RemoveTokens(ctx context.Context, uid string, tokens []string) error
}

// Report summarises one dispatch for logging and tests.
type Report struct {
	Skipped string // non-empty when nothing was sent, with the reason
	Sent    int
	Failed  int
	Pruned  int
}

// Dispatcher implements best-effort push delivery: check preferences, fan out
// to every registered token in provider-sized chunks, and reconcile invalid
// tokens out of the registry. It never propagates errors to callers; a push
// failure must not abort the in-app record write that accompanies it.
type Dispatcher struct {
	gate   CategoryGate
	tokens TokenStore
	sender Sender
	log    *zap.Logger
}

// NewDispatcher constructs a Dispatcher. A nil sender disables push entirely
// (every dispatch reports skipped), which is how deployments without provider
// credentials run.
func NewDispatcher(gate CategoryGate, tokens TokenStore, sender Sender) *Dispatcher {
	return &Dispatcher{
		gate:   gate,
		tokens: tokens,
		sender: sender,
		log:    logger.WithModule("push"),
	}
}

// SendToUser delivers the payload to every device registered for uid.
// An empty category skips the preference gate: some call sites (pairing
// success, uncategorised notifications) intentionally bypass it.
func (d *Dispatcher) SendToUser(ctx context.Context, uid string, payload Payload, category notify.Category) Report {
	if d == nil || d.sender == nil {
		return Report{Skipped: "push disabled"}
	}
	if uid == "" {
		return Report{Skipped: "no recipient"}
	}

	if category != "" && d.gate != nil && !d.gate.IsCategoryAllowed(ctx, uid, category) {
		return Report{Skipped: "blocked by preferences"}
	}

	tokens, err := d.tokens.ActiveTokens(ctx, uid)
	if err != nil {
		d.log.Warn("token lookup failed", zap.String("uid", uid), zap.Error(err))
		return Report{Skipped: "token lookup failed"}
	}
	if len(tokens) == 0 {
		return Report{Skipped: "no registered devices"}
	}

	report := Report{}
	var invalid []string

	for _, chunk := range chunkTokens(tokens) {
		tickets, err := d.sender.Send(ctx, chunk, payload)
		if err != nil {
			// The whole batch failed (provider unreachable); count and move on.
			report.Failed += len(chunk)
			d.log.Warn("push batch failed", zap.String("uid", uid), zap.Int("tokens", len(chunk)), zap.Error(err))
			continue
		}

		for _, ticket := range tickets {
			if ticket.OK {
				report.Sent++
				continue
			}
			report.Failed++
			if ticket.Unregistered {
				invalid = append(invalid, ticket.Token)
			}
		}
	}

	if len(invalid) > 0 {
		if err := d.tokens.RemoveTokens(ctx, uid, invalid); err != nil {
			d.log.Warn("token cleanup failed", zap.String("uid", uid), zap.Int("tokens", len(invalid)), zap.Error(err))
		} else {
			report.Pruned = len(invalid)
			metrics.PushTokensPruned.Add(float64(len(invalid)))
		}
	}

	metrics.PushMessages.WithLabelValues("ok").Add(float64(report.Sent))
	metrics.PushMessages.WithLabelValues("error").Add(float64(report.Failed))

	d.log.Debug("push dispatched",
		zap.String("uid", uid),
		zap.String("category", string(category)),
		zap.Int("sent", report.Sent),
		zap.Int("failed", report.Failed),
		zap.Int("pruned", report.Pruned),
	)

	return report
}
