package model

import "errors"

var (
	// ErrInsufficientData is returned when a point estimate is requested from
	// a sample with no observations.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMisalignedScenarios is returned when an operation needs index-aligned
	// replications (common random numbers) but scenario lengths differ.
	ErrMisalignedScenarios = errors.New("scenarios are not index-aligned")

	// ErrInvalidArgument covers malformed tags and out-of-range parameters.
	ErrInvalidArgument = errors.New("invalid argument")
)
