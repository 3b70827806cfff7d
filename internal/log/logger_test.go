package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLoggerSequence(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewRoundStartEvent(0))
	l.Log(NewStepEvent(1, "Attack"))
	l.Log(NewCardDiedEvent(1, "Enemy", "C"))

	events := l.Events()
	require.Len(t, events, 3)
	for i, e := range events {
		assert.Equal(t, i+1, e.Seq)
	}
	assert.Equal(t, EventCardDied, l.LastEvent().Type)
	assert.Len(t, l.EventsOfType(EventStep), 1)

	since := l.Since(1)
	require.Len(t, since, 2)
	assert.Equal(t, EventStep, since[0].Type)
	assert.Empty(t, l.Since(3))
}

func TestLastEventEmpty(t *testing.T) {
	assert.Equal(t, GameEvent{}, NewMemoryLogger().LastEvent())
}

func TestTextLoggerWritesLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewTextLogger(&buf)
	l.Log(NewWinEvent(3, "Player"))

	assert.Len(t, l.Events(), 1)
	assert.Equal(t, FormatEvent(l.Events()[0])+"\n", buf.String())
	assert.Contains(t, buf.String(), "S3  ")
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "HealthChangeCancelled", EventHealthChangeCancelled.String())
	assert.Equal(t, "Unknown", EventType(999).String())
}
