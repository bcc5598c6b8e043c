package operations

import (
	"time"
)

// Config represents the pipeline execution configuration
type Config struct {
	// DefaultTimeout applies to steps without an entry in StepTimeouts.
	DefaultTimeout time.Duration `json:"default_timeout"`

	// Step-specific timeouts
	StepTimeouts map[string]time.Duration `json:"step_timeouts"`
}

// NewConfig returns the default pipeline configuration
func NewConfig() *Config {
	return &Config{
		DefaultTimeout: DefaultStepTimeout,
		StepTimeouts:   make(map[string]time.Duration),
	}
}

// GetStepTimeout returns the timeout for a specific Step
func (c *Config) GetStepTimeout(stepID string) time.Duration {
	if c == nil {
		return DefaultStepTimeout
	}
	if timeout, ok := c.StepTimeouts[stepID]; ok && timeout > 0 {
		return timeout
	}
	if c.DefaultTimeout > 0 {
		return c.DefaultTimeout
	}
	return DefaultStepTimeout
}

// SetStepTimeout sets the timeout for a specific Step
func (c *Config) SetStepTimeout(stepID string, timeout time.Duration) {
	if c.StepTimeouts == nil {
		c.StepTimeouts = make(map[string]time.Duration)
	}
	c.StepTimeouts[stepID] = timeout
}
