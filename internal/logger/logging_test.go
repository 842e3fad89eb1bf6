package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterUsesPrefixAndLevel(t *testing.T) {
	prev := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(prev) })
	log.SetLevel(log.WarnLevel)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "server")
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	assert.Contains(t, out, "server")
	assert.Contains(t, out, "shown")
	assert.NotContains(t, out, "hidden")
}

func TestNewWithConfig(t *testing.T) {
	l := NewWithConfig("cli", log.DebugLevel, false, false, log.JSONFormatter)
	assert.Equal(t, log.DebugLevel, l.GetLevel())
	assert.Equal(t, "cli", l.GetPrefix())
}
