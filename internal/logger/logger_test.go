package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("ConsoleFormat", func(t *testing.T) {
		log, err := New(Config{Level: "info", Format: "console"})
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("JSONFormat", func(t *testing.T) {
		log, err := New(Config{Level: "debug", Format: "json"})
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		_, err := New(Config{Level: "loud", Format: "console"})
		assert.Error(t, err)
	})
}

func TestWithComponent(t *testing.T) {
	log := Nop().WithComponent("pipeline")
	assert.NotNil(t, log)
	log.Info("should not panic")
}
