package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dbsmedya/fraudprep/internal/types"
)

const utf8BOM = "\uFEFF"

// LoadOptions controls how a delimited file is read.
type LoadOptions struct {
	Delimiter rune
}

// LoadOption customizes LoadOptions.
type LoadOption func(*LoadOptions)

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(d rune) LoadOption {
	return func(o *LoadOptions) {
		if d != 0 {
			o.Delimiter = d
		}
	}
}

// Load reads a delimited file with a header row into a Table.
// Column names come from the header. A missing or unreadable file yields
// types.ErrDataAccess; malformed content yields types.ErrParse. Column
// presence and cell types are not checked here.
func Load(path string, opts ...LoadOption) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open %s: %v", types.ErrDataAccess, path, err)
	}
	defer file.Close()

	t, err := Read(bufio.NewReader(file), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return t, nil
}

// Read parses delimited text with a header row from r.
func Read(r io.Reader, opts ...LoadOption) (*Table, error) {
	options := LoadOptions{Delimiter: ','}
	for _, opt := range opts {
		opt(&options)
	}

	reader := csv.NewReader(r)
	reader.Comma = options.Delimiter

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: no header row", types.ErrParse)
	}
	if err != nil {
		return nil, wrapReadError(err)
	}

	names := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		names[i] = strings.TrimSpace(h)
	}

	columns := make([][]string, len(names))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapReadError(err)
		}
		for j, cell := range record {
			columns[j] = append(columns[j], cell)
		}
	}

	// Header-only files still get zero-length columns.
	for j := range columns {
		if columns[j] == nil {
			columns[j] = []string{}
		}
	}

	return New(names, columns)
}

// wrapReadError classifies csv reader failures. Anything the csv package
// reports as a ParseError is malformed content; other errors come from the
// underlying reader and are access failures.
func wrapReadError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return fmt.Errorf("%w: %v", types.ErrParse, err)
	}
	return fmt.Errorf("%w: %v", types.ErrDataAccess, err)
}
