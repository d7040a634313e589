package memory

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/code-payments/dapp-payments/pkg/config"
)

// ErrInduced is returned by Get while InduceErrors is in effect
var ErrInduced = errors.New("in memory config: developer induced error")

// Config is an in memory config.Config for tests and manual overrides
type Config struct {
	stateMu  sync.RWMutex
	value    interface{}
	induced  bool
	shutdown bool
}

// NewConfig returns a new in memory config. A nil value means no value is set.
func NewConfig(value interface{}) *Config {
	return &Config{
		value: value,
	}
}

// Get implements Config.Get
func (c *Config) Get(_ context.Context) (interface{}, error) {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()

	switch {
	case c.shutdown:
		return nil, config.ErrShutdown
	case c.induced:
		return nil, ErrInduced
	case c.value == nil:
		return nil, config.ErrNoValue
	}
	return c.value, nil
}

// Shutdown implements Config.Shutdown
func (c *Config) Shutdown() {
	c.stateMu.Lock()
	c.shutdown = true
	c.stateMu.Unlock()
}

// SetValue sets the value returned by subsequent Get calls
func (c *Config) SetValue(value interface{}) {
	c.stateMu.Lock()
	c.value = value
	c.stateMu.Unlock()
}

// ClearValue makes subsequent Get calls return config.ErrNoValue
func (c *Config) ClearValue() {
	c.SetValue(nil)
}

// InduceErrors makes subsequent Get calls fail with ErrInduced
func (c *Config) InduceErrors() {
	c.stateMu.Lock()
	c.induced = true
	c.stateMu.Unlock()
}

// StopInducingErrors undoes InduceErrors
func (c *Config) StopInducingErrors() {
	c.stateMu.Lock()
	c.induced = false
	c.stateMu.Unlock()
}
