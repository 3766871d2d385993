package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	modelx "github.com/narinth/insurepath/insurance/model"
	providerx "github.com/narinth/insurepath/insurance/provider"
)

// Engine owns the workflow contexts, one per workflow id. Reads and writes
// of the map are serialized by a single mutex; ordering of transitions for
// one workflow id is the caller's responsibility.
type Engine struct {
	mu        sync.Mutex
	workflows map[string]*Context

	snapshots Store
	now       func() time.Time
}

// EngineOption customizes an Engine.
type EngineOption func(*Engine)

// WithSnapshotStore enables best-effort persistence: after every transition
// the updated context is saved to the store. Persist failures are logged and
// never block the transition.
func WithSnapshotStore(store Store) EngineOption {
	return func(e *Engine) {
		e.snapshots = store
	}
}

// WithClock overrides the time source. Useful for tests.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		workflows: make(map[string]*Context),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Create registers a new workflow in the initiated state.
func (e *Engine) Create(ctx context.Context, workflowID string, consumer modelx.Consumer) (Context, error) {
	if workflowID == "" {
		return Context{}, ErrInvalidWorkflow
	}

	e.mu.Lock()
	if _, ok := e.workflows[workflowID]; ok {
		e.mu.Unlock()
		return Context{}, fmt.Errorf("%w: %s", ErrWorkflowExists, workflowID)
	}
	wf := &Context{
		WorkflowID: workflowID,
		State:      StateInitiated,
		Consumer:   consumer,
	}
	wf.touch(e.now())
	e.workflows[workflowID] = wf
	snap := wf.snapshot()
	e.mu.Unlock()

	e.persist(ctx, snap)
	return snap, nil
}

// Get returns a copy of the workflow context.
func (e *Engine) Get(workflowID string) (Context, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	wf, ok := e.workflows[workflowID]
	if !ok {
		return Context{}, false
	}
	return wf.snapshot(), true
}

// ProcessEligibility attaches the product and advances to quote generation,
// or fails the workflow with the supplied reasons.
func (e *Engine) ProcessEligibility(ctx context.Context, workflowID string, product modelx.Product, eligible bool, reasons []string) (Context, error) {
	return e.transition(ctx, workflowID, func(wf *Context) {
		wf.Product = &product
		if eligible {
			wf.State = StateQuoteGeneration
		} else {
			wf.State = StateFailed
			wf.Errors = append(wf.Errors, reasons...)
		}
	})
}

// ProcessQuote attaches the quote and advances to cross-sell.
func (e *Engine) ProcessQuote(ctx context.Context, workflowID string, quote modelx.Quote) (Context, error) {
	return e.transition(ctx, workflowID, func(wf *Context) {
		wf.Quote = &quote
		wf.State = StateCrossSell
	})
}

// ProcessCrossSell attaches the recommendations and advances to enrollment.
func (e *Engine) ProcessCrossSell(ctx context.Context, workflowID string, products []modelx.Product) (Context, error) {
	return e.transition(ctx, workflowID, func(wf *Context) {
		wf.CrossSellProducts = products
		wf.State = StateEnrollment
	})
}

// ProcessEnrollment records the enrollment outcome and completes or fails
// the workflow.
func (e *Engine) ProcessEnrollment(ctx context.Context, workflowID string, result providerx.EnrollmentResult) (Context, error) {
	return e.transition(ctx, workflowID, func(wf *Context) {
		wf.EnrollmentData = map[string]any{
			"success":       result.Success,
			"enrollment_id": result.EnrollmentID,
			"status":        result.Status,
			"next_steps":    result.NextSteps,
		}
		if result.Success {
			wf.State = StateCompleted
			return
		}
		wf.State = StateFailed
		cause := result.Error
		if cause == "" {
			cause = "Enrollment failed"
		}
		wf.Errors = append(wf.Errors, cause)
	})
}

// Fail moves a live workflow to the failed state recording the cause. Used
// by callers whose provider call was cancelled or errored mid-phase so the
// workflow is never left dangling in an intermediate state.
func (e *Engine) Fail(ctx context.Context, workflowID string, cause string) (Context, error) {
	return e.transition(ctx, workflowID, func(wf *Context) {
		wf.State = StateFailed
		if cause != "" {
			wf.Errors = append(wf.Errors, cause)
		}
	})
}

// Clear drops every workflow. Caller-triggered only; useful for tests.
func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.workflows = make(map[string]*Context)
}

// transition applies mutate under the map lock. A missing workflow id is a
// caller usage error and propagates hard; a terminal context rejects the
// transition.
func (e *Engine) transition(ctx context.Context, workflowID string, mutate func(*Context)) (Context, error) {
	e.mu.Lock()
	wf, ok := e.workflows[workflowID]
	if !ok {
		e.mu.Unlock()
		return Context{}, fmt.Errorf("%w: %s", ErrWorkflowNotFound, workflowID)
	}
	if wf.State.Terminal() {
		state := wf.State
		e.mu.Unlock()
		return Context{}, fmt.Errorf("%w: %s is %s", ErrWorkflowTerminal, workflowID, state)
	}

	mutate(wf)
	wf.touch(e.now())
	snap := wf.snapshot()
	e.mu.Unlock()

	e.persist(ctx, snap)
	return snap, nil
}

func (e *Engine) persist(ctx context.Context, snap Context) {
	if e.snapshots == nil {
		return
	}
	if err := e.snapshots.Save(ctx, &snap); err != nil {
		log.Warn().
			Err(err).
			Str("workflow_id", snap.WorkflowID).
			Str("state", string(snap.State)).
			Msg("workflow snapshot persist failed")
	}
}
