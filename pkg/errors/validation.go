package errors

import (
	"math"
)

// ValidateLevel validates a subdivision level received at a trust boundary
// (CLI flag or API parameter) before it reaches the generator.
//
// The maximum is passed in by the caller so this package stays free of
// domain imports; CLI and API pass the generator's level cap.
func ValidateLevel(level, max int) error {
	if level < 0 {
		return New(ErrCodeInvalidLevel, "level must not be negative: %d", level)
	}
	if level > max {
		return New(ErrCodeInvalidLevel, "level %d exceeds maximum %d", level, max)
	}
	return nil
}

// ValidateParam validates a curve parameter received at a trust boundary.
// The parameter must be a finite number in [0, 1].
func ValidateParam(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return New(ErrCodeInvalidParam, "curve parameter must be a finite number")
	}
	if t < 0 || t > 1 {
		return New(ErrCodeInvalidParam, "curve parameter must be in [0, 1]: %g", t)
	}
	return nil
}

// ValidateSampleCount validates a requested sample count. Both endpoints are
// always part of a sampling, so two is the minimum; the maximum keeps a
// single API request from generating unbounded output.
func ValidateSampleCount(n, max int) error {
	if n < 2 {
		return New(ErrCodeInvalidParam, "sample count must be at least 2: %d", n)
	}
	if n > max {
		return New(ErrCodeInvalidParam, "sample count %d exceeds maximum %d", n, max)
	}
	return nil
}

