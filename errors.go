package simflow

import "errors"

var (
	// Configuration errors.
	ErrUnknownWorkflow  = errors.New("simflow: unknown workflow")
	ErrUnknownStage     = errors.New("simflow: unknown stage")
	ErrUnknownOperation = errors.New("simflow: unknown operation")
	ErrMissingConfig    = errors.New("simflow: missing required config key")

	// Adapter errors.
	ErrAdapterUnavailable = errors.New("simflow: adapter unavailable")

	// Artifact errors.
	ErrArtifactNotFound = errors.New("simflow: artifact not found")

	// Run state errors.
	ErrRunCancelled  = errors.New("simflow: run cancelled")
	ErrRunInProgress = errors.New("simflow: run already in progress")
)
