package dispatcher

import "time"

// Config controls how commands are run.
type Config struct {
	// EnableMetrics turns on per-command counters and timings.
	EnableMetrics bool

	// RecoverFromPanic turns a panicking handler into an error result.
	RecoverFromPanic bool

	// SlowCommand logs commands that take longer at info level. Zero
	// disables the check.
	SlowCommand time.Duration
}

// DefaultConfig recovers panics and reports commands slower than 250ms.
func DefaultConfig() Config {
	return Config{
		RecoverFromPanic: true,
		SlowCommand:      250 * time.Millisecond,
	}
}

func (c Config) WithMetrics() Config {
	c.EnableMetrics = true
	return c
}

func (c Config) WithPanicRecovery(recover bool) Config {
	c.RecoverFromPanic = recover
	return c
}

// WithSlowCommand sets the slow command threshold.
func (c Config) WithSlowCommand(d time.Duration) Config {
	c.SlowCommand = d
	return c
}
