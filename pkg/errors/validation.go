package errors

import "math"

// ValidatePositive rejects zero, negative and non-finite values for the
// named option.
func ValidatePositive(name string, v float64) error {
	if !finite(v) || v <= 0 {
		return New(ErrCodeInvalidOptions, "%s must be positive, got %v", name, v)
	}
	return nil
}

// ValidateNonNegative rejects negative and non-finite values for the named
// option.
func ValidateNonNegative(name string, v float64) error {
	if !finite(v) || v < 0 {
		return New(ErrCodeInvalidOptions, "%s must not be negative, got %v", name, v)
	}
	return nil
}

// ValidateFraction rejects values outside [0, 1].
func ValidateFraction(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return New(ErrCodeInvalidOptions, "%s must be within [0,1], got %v", name, v)
	}
	return nil
}

// ValidateDimensions rejects empty grid extents.
func ValidateDimensions(w, h int) error {
	if w <= 0 || h <= 0 {
		return New(ErrCodeInvalidInput, "grid dimensions must be positive, got %dx%d", w, h)
	}
	return nil
}

// ValidateSameShape reports a mismatch between an expected and an actual
// grid shape. The label identifies the offending operand.
func ValidateSameShape(label string, wantW, wantH, gotW, gotH int) error {
	if wantW != gotW || wantH != gotH {
		return New(ErrCodeDimensionMismatch, "%s is %dx%d, want %dx%d", label, gotW, gotH, wantW, wantH)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
