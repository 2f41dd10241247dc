package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/specialistvlad/cgpgrid/internal/ctxlog"
)

// ErrCategorical is returned when a cell cannot be parsed as a number.
// Categorical variables are not supported by the interpreter.
var ErrCategorical = errors.New("non-numeric value")

// LoadCSV reads a comma-separated file whose first record is the header.
func LoadCSV(ctx context.Context, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	t, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset %s: %w", path, err)
	}
	return t, nil
}

// ReadCSV parses CSV data from r. See LoadCSV.
func ReadCSV(ctx context.Context, r io.Reader) (*Table, error) {
	logger := ctxlog.FromContext(ctx)

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, err
	}
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}
	columns := make([][]float64, len(names))

	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		for i, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("%w in column %q on line %d: %q", ErrCategorical, names[i], line, cell)
			}
			columns[i] = append(columns[i], v)
		}
	}

	t, err := NewTable(names, columns)
	if err != nil {
		return nil, err
	}
	logger.Debug("Dataset parsed.", "columns", len(names), "rows", t.Rows())
	return t, nil
}
