package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidParameter is matched by every rejection produced by Validate.
var ErrInvalidParameter = errors.New("invalid parameter")

// Field names carried by InvalidParameterError.
const (
	FieldSpotPrice      = "spotPrice"
	FieldStrikePrice    = "strikePrice"
	FieldTimeToMaturity = "timeToMaturity"
	FieldRiskFreeRate   = "riskFreeRate"
	FieldVolatility     = "volatility"
	FieldPathCount      = "pathCount"
	FieldIterations     = "iterations"
)

type Constraint int

const (
	MustBePositive Constraint = iota
	MustBeNonNegative
)

func (c Constraint) String() string {
	switch c {
	case MustBePositive:
		return "must be positive"
	case MustBeNonNegative:
		return "must be non-negative"
	}
	return "unknown constraint"
}

// InvalidParameterError names the field that broke its invariant.
type InvalidParameterError struct {
	Field      string
	Constraint Constraint
	Value      float64
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter: %s %s, got %g", e.Field, e.Constraint, e.Value)
}

func (e *InvalidParameterError) Is(target error) bool {
	return target == ErrInvalidParameter
}

func NewInvalidParameter(field string, c Constraint, value float64) error {
	return &InvalidParameterError{Field: field, Constraint: c, Value: value}
}

// OptionParameters describes a European call.
type OptionParameters struct {
	SpotPrice      float64 `json:"spotPrice"`      // Current underlying price
	StrikePrice    float64 `json:"strikePrice"`    // Strike
	TimeToMaturity float64 `json:"timeToMaturity"` // Years
	RiskFreeRate   float64 `json:"riskFreeRate"`   // Continuously compounded
	Volatility     float64 `json:"volatility"`     // Annualized
}

// Validated wraps parameters that passed Validate. The zero value is
// unvalidated and must not be simulated.
type Validated struct {
	params OptionParameters
	ok     bool
}

func (v Validated) Params() OptionParameters { return v.params }

func (v Validated) IsValid() bool { return v.ok }

// Validate moves parameters from unvalidated to either valid or rejected.
// Nothing is cached; every pricing call validates again.
func Validate(p OptionParameters) (Validated, error) {
	// NaN fails every comparison below and is rejected with the field it sits in.
	switch {
	case !(p.SpotPrice > 0):
		return Validated{}, NewInvalidParameter(FieldSpotPrice, MustBePositive, p.SpotPrice)
	case !(p.StrikePrice > 0):
		return Validated{}, NewInvalidParameter(FieldStrikePrice, MustBePositive, p.StrikePrice)
	case !(p.TimeToMaturity > 0):
		return Validated{}, NewInvalidParameter(FieldTimeToMaturity, MustBePositive, p.TimeToMaturity)
	case !(p.RiskFreeRate >= 0):
		return Validated{}, NewInvalidParameter(FieldRiskFreeRate, MustBeNonNegative, p.RiskFreeRate)
	case !(p.Volatility > 0):
		return Validated{}, NewInvalidParameter(FieldVolatility, MustBePositive, p.Volatility)
	}
	return Validated{params: p, ok: true}, nil
}

// ValidatePathCount rejects non-positive path counts with the same error kind
// as the option parameters.
func ValidatePathCount(paths int) error {
	if paths <= 0 {
		return NewInvalidParameter(FieldPathCount, MustBePositive, float64(paths))
	}
	return nil
}
