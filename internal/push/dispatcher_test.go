package push

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calebgil/tandem/internal/notify"
)

type stubGate struct {
	allow bool
}

func (g stubGate) IsCategoryAllowed(context.Context, string, notify.Category) bool {
	return g.allow
}

type stubTokens struct {
	tokens  []string
	err     error
	removed []string
}

func (s *stubTokens) ActiveTokens(context.Context, string) ([]string, error) {
	return s.tokens, s.err
}

func (s *stubTokens) RemoveTokens(_ context.Context, _ string, tokens []string) error {
	s.removed = append(s.removed, tokens...)
	return nil
}

type stubSender struct {
	tickets map[string]Ticket
	err     error
	batches [][]string
}

func (s *stubSender) Send(_ context.Context, tokens []string, _ Payload) ([]Ticket, error) {
	s.batches = append(s.batches, tokens)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]Ticket, len(tokens))
	for i, token := range tokens {
		if ticket, ok := s.tickets[token]; ok {
			out[i] = ticket
			continue
		}
		out[i] = Ticket{Token: token, OK: true}
	}
	return out, nil
}

func TestSendToUserDisabledWithoutSender(t *testing.T) {
	d := NewDispatcher(stubGate{allow: true}, &stubTokens{}, nil)

	report := d.SendToUser(context.Background(), "u1", Payload{Title: "hi"}, notify.CategoryNudge)

	assert.Equal(t, "push disabled", report.Skipped)
	assert.Zero(t, report.Sent)
}

func TestSendToUserBlockedByPreferences(t *testing.T) {
	sender := &stubSender{}
	d := NewDispatcher(stubGate{allow: false}, &stubTokens{tokens: []string{"t1"}}, sender)

	report := d.SendToUser(context.Background(), "u1", Payload{}, notify.CategoryNudge)

	assert.Equal(t, "blocked by preferences", report.Skipped)
	assert.Empty(t, sender.batches, "blocked sends never reach the provider")
}

func TestSendToUserEmptyCategoryBypassesGate(t *testing.T) {
	sender := &stubSender{}
	d := NewDispatcher(stubGate{allow: false}, &stubTokens{tokens: []string{"t1"}}, sender)

	report := d.SendToUser(context.Background(), "u1", Payload{}, "")

	assert.Empty(t, report.Skipped)
	assert.Equal(t, 1, report.Sent)
}

func TestSendToUserNoDevices(t *testing.T) {
	d := NewDispatcher(stubGate{allow: true}, &stubTokens{}, &stubSender{})

	report := d.SendToUser(context.Background(), "u1", Payload{}, notify.CategoryNudge)

	assert.Equal(t, "no registered devices", report.Skipped)
}

func TestSendToUserPrunesUnregisteredTokens(t *testing.T) {
	tokens := &stubTokens{tokens: []string{"good", "dead", "flaky"}}
	sender := &stubSender{tickets: map[string]Ticket{
		"dead":  {Token: "dead", Unregistered: true, Err: errors.New("unregistered")},
		"flaky": {Token: "flaky", Err: errors.New("timeout")},
	}}
	d := NewDispatcher(stubGate{allow: true}, tokens, sender)

	report := d.SendToUser(context.Background(), "u1", Payload{}, notify.CategoryNudge)

	assert.Equal(t, 1, report.Sent)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 1, report.Pruned)
	assert.Equal(t, []string{"dead"}, tokens.removed, "only terminal failures are pruned")
}

func TestSendToUserBatchFailureCountsWholeChunk(t *testing.T) {
	tokens := &stubTokens{tokens: []string{"a", "b", "c"}}
	sender := &stubSender{err: errors.New("provider down")}
	d := NewDispatcher(stubGate{allow: true}, tokens, sender)

	report := d.SendToUser(context.Background(), "u1", Payload{}, notify.CategoryNudge)

	assert.Zero(t, report.Sent)
	assert.Equal(t, 3, report.Failed)
	assert.Empty(t, tokens.removed)
}

func TestChunkTokensRespectsProviderLimit(t *testing.T) {
	many := make([]string, ChunkSize+2)
	for i := range many {
		many[i] = "t"
	}

	chunks := chunkTokens(many)
	require.Len(t, chunks, 2)
	assert.Len(t, chunks[0], ChunkSize)
	assert.Len(t, chunks[1], 2)

	assert.Nil(t, chunkTokens(nil))
}
