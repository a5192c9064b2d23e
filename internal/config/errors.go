package config

import "errors"

var (
	ErrNegativeWorkers = errors.New("runner workers must not be negative")
)
