package logging

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockLogger_DerivedLoggersShareEntries(t *testing.T) {
	mock := NewMockLogger()

	mock.WithField(FieldRow, 3).Warn("Malformed row skipped")
	mock.WithError(errors.New("boom")).Error("Failed to write order file")
	mock.Info("done")

	entries := mock.GetEntries()
	require.Len(t, entries, 3)

	assert.Equal(t, "WARN", entries[0].Level)
	value, ok := entries[0].FieldValue(FieldRow)
	assert.True(t, ok)
	assert.Equal(t, 3, value)

	assert.EqualError(t, entries[1].Error, "boom")
	assert.True(t, mock.HasEntry("INFO", "done"))
	assert.Len(t, mock.GetEntriesByLevel("ERROR"), 1)
}

func TestMockLogger_Clear(t *testing.T) {
	mock := NewMockLogger()
	mock.Debug("one")
	mock.Clear()
	assert.Empty(t, mock.GetEntries())
}

func TestMockLogger_ZeroValueUsable(t *testing.T) {
	var mock MockLogger
	mock.WithFields(Field{Key: FieldPage, Value: 1}).Info("page read")
	assert.True(t, mock.HasEntry("INFO", "page read"))
}
