package order

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/pdf-order/internal/logging"
	"fjacquet/pdf-order/internal/models"
	"fjacquet/pdf-order/internal/ordererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRecord() *Record {
	return &Record{
		Header: models.NewOrderHeader("1112L", orderDay, 10),
		Lines:  []models.OrderLine{{Article: "ART1", Quantity: "5"}},
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "O1112L_2024-03-05_10_1", FileName("1112L", orderDay, "10_1"))
	assert.Equal(t, "O2001X_2024-12-25_3", FileName("2001X", time.Date(2024, 12, 25, 23, 0, 0, 0, time.UTC), "3"))
}

func TestNextSequence(t *testing.T) {
	dir := t.TempDir()

	seq, err := NextSequence(dir, "1112L", orderDay)
	require.NoError(t, err)
	assert.Equal(t, "1", seq)

	for _, name := range []string{
		"O1112L_2024-03-05_1",
		"O1112L_2024-03-05_4",
		"O1112L_2024-03-05_10_1",
		"O1112L_2024-03-04_9",
		"O2001X_2024-03-05_7",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	seq, err = NextSequence(dir, "1112L", orderDay)
	require.NoError(t, err)
	assert.Equal(t, "5", seq)

	seq, err = NextSequence(filepath.Join(dir, "missing"), "1112L", orderDay)
	require.NoError(t, err)
	assert.Equal(t, "1", seq)
}

func TestWriter_WritesRecord(t *testing.T) {
	dir := t.TempDir()
	logger := logging.NewMockLogger()
	w := NewWriter(dir, logger)

	path, err := w.Write(testRecord(), "10_1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "O1112L_2024-03-05_10_1"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testRecord().String(), string(data))
	assert.Empty(t, logger.GetEntriesByLevel("WARN"))
}

func TestWriter_OverwritesWithWarning(t *testing.T) {
	dir := t.TempDir()
	logger := logging.NewMockLogger()
	w := NewWriter(dir, logger)

	first, err := w.Write(testRecord(), "10_1")
	require.NoError(t, err)

	second := testRecord()
	second.Lines = append(second.Lines, models.OrderLine{Article: "ART2", Quantity: "1"})
	path, err := w.Write(second, "10_1")
	require.NoError(t, err)

	assert.Equal(t, first, path)
	assert.True(t, logger.HasEntry("WARN", "Order file already exists and will be overwritten"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, second.String(), string(data))
}

func TestWriter_DerivesSequence(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, logging.NewMockLogger())

	first, err := w.Write(testRecord(), "")
	require.NoError(t, err)
	second, err := w.Write(testRecord(), "")
	require.NoError(t, err)

	assert.Equal(t, "O1112L_2024-03-05_1", filepath.Base(first))
	assert.Equal(t, "O1112L_2024-03-05_2", filepath.Base(second))
}

func TestWriter_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "orders", "out")
	w := NewWriter(dir, logging.NewMockLogger())

	path, err := w.Write(testRecord(), "1")
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriter_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	// A directory where the order file should go makes the write fail.
	target := filepath.Join(dir, FileName("1112L", orderDay, "1"))
	require.NoError(t, os.Mkdir(target, 0o750))

	logger := logging.NewMockLogger()
	w := NewWriter(dir, logger)

	_, err := w.Write(testRecord(), "1")
	require.Error(t, err)

	var writeErr *ordererror.WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, target, writeErr.FilePath)
	assert.Equal(t, ordererror.ExitWriteFailed, ordererror.ExitCode(err))
	assert.True(t, logger.HasEntry("ERROR", "Failed to write order file"))
}
