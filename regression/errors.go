package regression

import "errors"

var (
	// ErrInsufficientData indicates a segment (or the whole input) holds too few
	// usable observations to fit a linear model.
	ErrInsufficientData = errors.New("insufficient data for regression")

	// ErrInvalidBreakpoint indicates breakpoints that are not strictly
	// increasing or that fall outside the open interval (min x, max x).
	// Breakpoints are never silently clamped into range.
	ErrInvalidBreakpoint = errors.New("invalid breakpoint")

	// ErrExtrapolation indicates an evaluation point outside the training range.
	// No segment owns the region beyond [min x, max x], so the piecewise model
	// refuses to produce a value there.
	ErrExtrapolation = errors.New("evaluation outside training range")
)
