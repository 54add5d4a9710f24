package config

import "errors"

var (
	// ErrInvalidDefaultTime is returned if JOB_HOUR or JOB_MINUTE is out of range.
	ErrInvalidDefaultTime = errors.New("JOB_HOUR must be 0..23 and JOB_MINUTE 0..59")
	// ErrInvalidTickSpec is returned if TICK_SPEC can fire more than once a minute.
	ErrInvalidTickSpec = errors.New("TICK_SPEC must fire at most once a minute, at second 0")
)
