package csvout

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	customLogger "github.com/chainharvest/chainharvest/internal/log"
	"github.com/chainharvest/chainharvest/internal/metrics"
)

// Record is a flat row with insertion-ordered keys, so the CSV header follows
// the order fields were set in.
type Record struct {
	keys   []string
	values map[string]string
}

func NewRecord() *Record {
	return &Record{
		values: map[string]string{},
	}
}

func (r *Record) Set(key string, value string) *Record {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
	return r
}

func (r *Record) Keys() []string {
	return r.keys
}

func (r *Record) Get(key string) string {
	return r.values[key]
}

// Writer serializes flat records to CSV files. The header comes from the
// first record's keys; every later record must carry the same key set.
type Writer struct {
	logger zerolog.Logger
}

func NewWriter() *Writer {
	return &Writer{
		logger: customLogger.NewLogger("csv"),
	}
}

// WriteFile writes one header row and one data row per record, preserving
// input order. An empty record list writes nothing and is not an error.
func (w *Writer) WriteFile(filename string, records []*Record) error {
	if len(records) == 0 {
		w.logger.Info().Msgf("No records to save, skipping %s", filename)
		return nil
	}

	header := records[0].Keys()
	for i, record := range records[1:] {
		if err := matchesHeader(header, record); err != nil {
			return fmt.Errorf("record %d does not match the header: %v", i+1, err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	csvWriter := csv.NewWriter(file)
	if err := csvWriter.Write(header); err != nil {
		return err
	}
	for _, record := range records {
		row := make([]string, len(header))
		for i, key := range header {
			row[i] = record.Get(key)
		}
		if err := csvWriter.Write(row); err != nil {
			return err
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return err
	}

	metrics.CsvRowsWritten.Add(float64(len(records)))
	w.logger.Info().Msgf("Saved %d records to %s", len(records), filename)
	return nil
}

func matchesHeader(header []string, record *Record) error {
	keys := record.Keys()
	if len(keys) != len(header) {
		return fmt.Errorf("expected %d columns, got %d", len(header), len(keys))
	}
	for i, key := range header {
		if keys[i] != key {
			return fmt.Errorf("expected column %q at position %d, got %q", key, i, keys[i])
		}
	}
	return nil
}
