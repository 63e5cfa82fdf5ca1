// Package options provides shared utilities for option validation across packages.
package options

import "errors"

var (
	// ErrNoSource is returned when no input source is set.
	ErrNoSource = errors.New("no input source specified")
	// ErrMultipleSources is returned when more than one input source is set.
	ErrMultipleSources = errors.New("more than one input source specified")
)

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is set.
// Returns ErrNoSource or ErrMultipleSources otherwise.
func ValidateSingleInputSource(sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	if sourceCount == 0 {
		return ErrNoSource
	}
	if sourceCount > 1 {
		return ErrMultipleSources
	}

	return nil
}
