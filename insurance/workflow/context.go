// Package workflow sequences a consumer's progress through eligibility,
// quoting, cross-sell and enrollment.
package workflow

import (
	"errors"
	"fmt"
	"time"

	modelx "github.com/narinth/insurepath/insurance/model"
)

// State is a workflow phase. Completed and Failed are terminal.
type State string

const (
	StateInitiated        State = "initiated"
	StateEligibilityCheck State = "eligibility_check"
	StateQuoteGeneration  State = "quote_generation"
	StateCrossSell        State = "cross_sell"
	StateEnrollment       State = "enrollment"
	StateCompleted        State = "completed"
	StateFailed           State = "failed"
)

func (s State) known() bool {
	switch s {
	case StateInitiated, StateEligibilityCheck, StateQuoteGeneration,
		StateCrossSell, StateEnrollment, StateCompleted, StateFailed:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}

var (
	ErrWorkflowNotFound = errors.New("workflow not found")
	ErrWorkflowTerminal = errors.New("workflow already terminal")
	ErrWorkflowExists   = errors.New("workflow already exists")
	ErrInvalidWorkflow  = errors.New("workflow id is empty")
	ErrNilContext       = errors.New("workflow context is nil")
)

// Context is the mutable record tracking one workflow. Created once per
// workflow id and mutated in place by the engine; it is never deleted
// automatically.
type Context struct {
	WorkflowID        string           `json:"workflow_id"`
	State             State            `json:"state"`
	Consumer          modelx.Consumer  `json:"consumer"`
	Product           *modelx.Product  `json:"product,omitempty"`
	Quote             *modelx.Quote    `json:"quote,omitempty"`
	CrossSellProducts []modelx.Product `json:"cross_sell_products,omitempty"`
	EnrollmentData    map[string]any   `json:"enrollment_data,omitempty"`
	Errors            []string         `json:"errors,omitempty"`
	Metadata          map[string]any   `json:"metadata,omitempty"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func (c *Context) Validate() error {
	if c == nil {
		return ErrNilContext
	}
	if c.WorkflowID == "" {
		return ErrInvalidWorkflow
	}
	if !c.State.known() {
		return fmt.Errorf("unknown workflow state %q", c.State)
	}
	return nil
}

func (c *Context) touch(now time.Time) {
	c.UpdatedAt = now.UTC()
}

// snapshot returns a shallow copy safe to hand to callers and stores while
// the engine keeps mutating the canonical record.
func (c *Context) snapshot() Context {
	return *c
}
