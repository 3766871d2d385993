package model

import (
	"fmt"
	"reflect"
)

// Operator is the closed set of comparisons a Qualifier can perform.
// Unknown operators are rejected at validation time, not at evaluation time.
type Operator string

const (
	OpEq  Operator = "eq"
	OpNe  Operator = "ne"
	OpGt  Operator = "gt"
	OpLt  Operator = "lt"
	OpGte Operator = "gte"
	OpLte Operator = "lte"
	OpIn  Operator = "in"
)

func (op Operator) known() bool {
	switch op {
	case OpEq, OpNe, OpGt, OpLt, OpGte, OpLte, OpIn:
		return true
	}
	return false
}

func (op Operator) ordered() bool {
	switch op {
	case OpGt, OpLt, OpGte, OpLte:
		return true
	}
	return false
}

// Qualifier is a single attribute comparison against a flat consumer
// attribute map.
type Qualifier struct {
	Name        string   `json:"name" mapstructure:"name"`
	Description string   `json:"description" mapstructure:"description"`
	Field       string   `json:"field" mapstructure:"field"`
	Operator    Operator `json:"operator" mapstructure:"operator"`
	Value       any      `json:"value" mapstructure:"value"`
}

// Validate rejects malformed qualifiers eagerly so that evaluation can stay
// total. Ordered operators need a numeric or string value; 'in' needs a
// collection.
func (q Qualifier) Validate() error {
	if q.Field == "" {
		return fmt.Errorf("%w (qualifier %q)", ErrMissingField, q.Name)
	}
	if !q.Operator.known() {
		return fmt.Errorf("%w %q (qualifier %q)", ErrUnknownOperator, q.Operator, q.Name)
	}
	if q.Operator.ordered() {
		if _, ok := asFloat(q.Value); !ok {
			if _, ok := q.Value.(string); !ok {
				return fmt.Errorf("%w (qualifier %q)", ErrValueNotComparable, q.Name)
			}
		}
	}
	if q.Operator == OpIn {
		if _, ok := asSlice(q.Value); !ok {
			return fmt.Errorf("%w (qualifier %q)", ErrValueNotCollection, q.Name)
		}
	}
	return nil
}

// Evaluate reports whether the attribute map satisfies the qualifier.
// A missing or nil field always evaluates to false, never an error.
func (q Qualifier) Evaluate(attrs map[string]any) bool {
	fieldValue, ok := attrs[q.Field]
	if !ok || fieldValue == nil {
		return false
	}

	switch q.Operator {
	case OpEq:
		return equalValues(fieldValue, q.Value)
	case OpNe:
		return !equalValues(fieldValue, q.Value)
	case OpGt, OpLt, OpGte, OpLte:
		return compareOrdered(q.Operator, fieldValue, q.Value)
	case OpIn:
		members, ok := asSlice(q.Value)
		if !ok {
			return false
		}
		for _, member := range members {
			if equalValues(fieldValue, member) {
				return true
			}
		}
		return false
	default:
		// Unvalidated operator: evaluation stays total.
		return false
	}
}

func compareOrdered(op Operator, left, right any) bool {
	if lf, ok := asFloat(left); ok {
		rf, ok := asFloat(right)
		if !ok {
			return false
		}
		switch op {
		case OpGt:
			return lf > rf
		case OpLt:
			return lf < rf
		case OpGte:
			return lf >= rf
		case OpLte:
			return lf <= rf
		}
		return false
	}

	ls, ok := left.(string)
	if !ok {
		return false
	}
	rs, ok := right.(string)
	if !ok {
		return false
	}
	switch op {
	case OpGt:
		return ls > rs
	case OpLt:
		return ls < rs
	case OpGte:
		return ls >= rs
	case OpLte:
		return ls <= rs
	}
	return false
}

func equalValues(left, right any) bool {
	if lf, lok := asFloat(left); lok {
		rf, rok := asFloat(right)
		return rok && lf == rf
	}
	return reflect.DeepEqual(left, right)
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func asSlice(v any) ([]any, bool) {
	if members, ok := v.([]any); ok {
		return members, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	members := make([]any, rv.Len())
	for i := range members {
		members[i] = rv.Index(i).Interface()
	}
	return members, true
}
