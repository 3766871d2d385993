package model

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrUnknownOperator    = fmt.Errorf("%w: unknown operator", ErrValidation)
	ErrMissingField       = fmt.Errorf("%w: qualifier field is empty", ErrValidation)
	ErrValueNotComparable = fmt.Errorf("%w: ordered comparison needs a numeric or string value", ErrValidation)
	ErrValueNotCollection = fmt.Errorf("%w: 'in' operator needs a collection value", ErrValidation)
	ErrUnknownLogic       = fmt.Errorf("%w: rule logic must be 'all' or 'any'", ErrValidation)
	ErrMissingProductID   = fmt.Errorf("%w: product id is empty", ErrValidation)
)
