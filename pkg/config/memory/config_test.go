package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/dapp-payments/pkg/config"
)

func TestHappyPath(t *testing.T) {
	c := NewConfig(nil)
	_, err := c.Get(context.Background())
	assert.Equal(t, config.ErrNoValue, err)

	c.SetValue(uint64(1232))
	val, err := c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1232), val)

	c.ClearValue()
	_, err = c.Get(context.Background())
	assert.Equal(t, config.ErrNoValue, err)

	c.SetValue(true)
	c.InduceErrors()
	_, err = c.Get(context.Background())
	assert.Equal(t, ErrInduced, err)

	c.StopInducingErrors()
	val, err = c.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, true, val)

	c.Shutdown()
	_, err = c.Get(context.Background())
	assert.Equal(t, config.ErrShutdown, err)
}
