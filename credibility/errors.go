package credibility

import "errors"

// ErrMissingURL is returned when an assessment input has no URL.
var ErrMissingURL = errors.New("credibility: url is required")

// ErrInvalidURL is returned when the URL cannot be parsed or lacks a host.
var ErrInvalidURL = errors.New("credibility: invalid url")

// ErrInvalidOutcome is returned when a recorded outcome is outside [0,1].
var ErrInvalidOutcome = errors.New("credibility: outcome must be in [0,1]")
