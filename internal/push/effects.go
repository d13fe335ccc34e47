package push

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"
)

// Effect is one independent best-effort side effect of a domain event, such
// as "send push" or "write in-app record".
type Effect struct {
	Name string
	Run  func(ctx context.Context) error
}

// Outcome records how one effect ended.
type Outcome struct {
	Name string
	Err  error
}

// EffectReport aggregates the outcomes of one RunEffects call.
type EffectReport []Outcome

// Err combines all effect errors, or nil when everything succeeded.
func (r EffectReport) Err() error {
	var combined error
	for _, outcome := range r {
		if outcome.Err != nil {
			combined = multierr.Append(combined, fmt.Errorf("%s: %w", outcome.Name, outcome.Err))
		}
	}
	return combined
}

// Failed counts effects that returned an error.
func (r EffectReport) Failed() int {
	failed := 0
	for _, outcome := range r {
		if outcome.Err != nil {
			failed++
		}
	}
	return failed
}

// RunEffects executes every effect concurrently and waits for all of them.
// One effect failing or panicking never cancels its siblings; each outcome is
// captured so the caller can log an aggregate instead of scattering recover
// and error handling across call sites.
func RunEffects(ctx context.Context, effects ...Effect) EffectReport {
	report := make(EffectReport, len(effects))

	var wg sync.WaitGroup
	for i, effect := range effects {
		wg.Add(1)
		go func(i int, effect Effect) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					report[i] = Outcome{Name: effect.Name, Err: fmt.Errorf("panic: %v", r)}
				}
			}()
			report[i] = Outcome{Name: effect.Name, Err: effect.Run(ctx)}
		}(i, effect)
	}
	wg.Wait()

	return report
}
