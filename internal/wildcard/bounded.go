package wildcard

import (
	"context"
	"errors"
)

var (
	// ErrStepBudget is returned when a bounded match runs out of steps.
	ErrStepBudget = errors.New("wildcard: step budget exhausted")
	// ErrDepthLimit is returned when star backtracking nests deeper than allowed.
	ErrDepthLimit = errors.New("wildcard: recursion depth limit reached")
)

// ctxCheckInterval is how many steps pass between context checks.
const ctxCheckInterval = 1024

// Limits caps the work a single bounded match may do. Zero fields are unlimited.
type Limits struct {
	// MaxSteps is the number of pattern tokens the matcher may process,
	// summed over every backtracking attempt.
	MaxSteps int
	// MaxDepth is how deeply star backtracking may nest.
	MaxDepth int
}

type budget struct {
	ctx      context.Context
	maxSteps int
	maxDepth int
	steps    int
}

// step charges one token. A nil budget is unlimited.
func (b *budget) step(depth int) error {
	if b == nil {
		return nil
	}
	b.steps++
	if b.maxSteps > 0 && b.steps > b.maxSteps {
		return ErrStepBudget
	}
	if b.maxDepth > 0 && depth > b.maxDepth {
		return ErrDepthLimit
	}
	if b.ctx != nil && b.steps%ctxCheckInterval == 0 {
		return b.ctx.Err()
	}
	return nil
}

// MatchBounded is Match with a step budget, a depth cap and cancellation.
// Whenever it returns a nil error the result equals Match(subject, pattern, fold).
func MatchBounded(ctx context.Context, subject, pattern []byte, fold bool, lim Limits) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if matched, ok := fastPatternMatch(subject, pattern, fold); ok {
		return matched, nil
	}
	b := &budget{ctx: ctx, maxSteps: lim.MaxSteps, maxDepth: lim.MaxDepth}
	return matchRecursive(subject, pattern, fold, b, 0)
}

// Steps reports how many tokens the unbounded matcher processes for the
// given input. It is meant for tuning Limits.MaxSteps.
func Steps(subject, pattern []byte, fold bool) int {
	b := &budget{}
	_, _ = matchRecursive(subject, pattern, fold, b, 0)
	return b.steps
}
