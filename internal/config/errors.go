package config

import "errors"

var (
	// ErrInvalidStorageConfigs is returned when the durable store settings
	// are unusable (e.g. an empty database path).
	ErrInvalidStorageConfigs = errors.New("invalid storage configs")

	// ErrInvalidAPIConfigs is returned when the backend endpoint settings
	// are unusable (e.g. an empty base URL or non-positive timeout).
	ErrInvalidAPIConfigs = errors.New("invalid api configs")
)
