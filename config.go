// SPDX-License-Identifier: GPL-3.0-or-later

package callback

import "time"

// Config holds the dependencies shared by chains.
//
// Pass this to [NewChain] to pre-wire dependencies.
// All fields have sensible defaults set by [NewConfig].
type Config struct {
	// ErrClassifier classifies callback errors for structured logging.
	//
	// Set by [NewConfig] to [DefaultErrClassifier].
	ErrClassifier ErrClassifier

	// NewSpanID returns the identifier of each chain invocation.
	//
	// Set by [NewConfig] to [NewSpanID].
	NewSpanID func() string

	// TimeNow returns the current time.
	//
	// Set by [NewConfig] to [time.Now].
	TimeNow func() time.Time
}

// NewConfig creates a [*Config] with sensible defaults.
func NewConfig() *Config {
	return &Config{
		ErrClassifier: DefaultErrClassifier,
		NewSpanID:     NewSpanID,
		TimeNow:       time.Now,
	}
}
