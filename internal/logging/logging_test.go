package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{" warn ", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("match over", "outcome", "human_won")
	assert.Contains(t, buf.String(), "match over")
	assert.Contains(t, buf.String(), "outcome=human_won")
}

func TestComponentPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(&buf, "debug"), "server")

	l.Debug("tick")
	assert.Contains(t, buf.String(), "server")
	assert.Contains(t, buf.String(), "tick")
}
