package icc

import "errors"

var (
	// ErrCurve reports an invalid parameter count or a non-monotone or
	// discontinuous tone curve.
	ErrCurve = errors.New("curve error")
	// ErrEncoding reports a value or layout that the ICC container cannot
	// represent.
	ErrEncoding = errors.New("encoding error")
)
