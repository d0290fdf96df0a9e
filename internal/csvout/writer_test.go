package csvout

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readCSV(t *testing.T, filename string) [][]string {
	t.Helper()
	file, err := os.Open(filename)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteFileEmptyListWritesNothing(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.csv")

	err := NewWriter().WriteFile(filename, nil)

	require.NoError(t, err)
	_, statErr := os.Stat(filename)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFileSingleRecord(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.csv")
	record := NewRecord().
		Set("txHash", "0xtx1").
		Set("blockNumber", "21323365").
		Set("creator", "0xa")

	err := NewWriter().WriteFile(filename, []*Record{record})

	require.NoError(t, err)
	rows := readCSV(t, filename)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"txHash", "blockNumber", "creator"}, rows[0])
	assert.Equal(t, []string{"0xtx1", "21323365", "0xa"}, rows[1])
}

func TestWriteFilePreservesOrder(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.csv")
	records := []*Record{
		NewRecord().Set("id", "1").Set("name", "first"),
		NewRecord().Set("id", "2").Set("name", "second"),
		NewRecord().Set("id", "3").Set("name", "third"),
	}

	err := NewWriter().WriteFile(filename, records)

	require.NoError(t, err)
	rows := readCSV(t, filename)
	require.Len(t, rows, 4)
	assert.Equal(t, "first", rows[1][1])
	assert.Equal(t, "second", rows[2][1])
	assert.Equal(t, "third", rows[3][1])
}

func TestWriteFileRejectsMismatchedKeys(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.csv")
	records := []*Record{
		NewRecord().Set("id", "1").Set("name", "first"),
		NewRecord().Set("id", "2").Set("extra", "oops"),
	}

	err := NewWriter().WriteFile(filename, records)

	require.Error(t, err)
	_, statErr := os.Stat(filename)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteFileRejectsMissingKeys(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "out.csv")
	records := []*Record{
		NewRecord().Set("id", "1").Set("name", "first"),
		NewRecord().Set("id", "2"),
	}

	err := NewWriter().WriteFile(filename, records)

	require.Error(t, err)
}

func TestWriteFileBadPath(t *testing.T) {
	records := []*Record{NewRecord().Set("id", "1")}

	err := NewWriter().WriteFile(filepath.Join(t.TempDir(), "missing", "out.csv"), records)

	require.Error(t, err)
}

func TestRecordSetOverwritesWithoutDuplicateKey(t *testing.T) {
	record := NewRecord().Set("id", "1").Set("id", "2")

	assert.Equal(t, []string{"id"}, record.Keys())
	assert.Equal(t, "2", record.Get("id"))
}
