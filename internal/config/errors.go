package config

import "errors"

var (
	// ErrInvalidConfig marks a loaded configuration that failed Validate.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a failure reading the env file, the YAML file or the environment.
	ErrLoadConfig = errors.New("load config failed")
)
