package artifact

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrMalformed wraps every decode failure. Unlike lenient test-output
// parsing, a malformed artifact aborts the run: the registry would be built
// from inputs that cannot be trusted.
var ErrMalformed = errors.New("malformed artifact")

// ReadFile parses an artifact file from disk.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open artifact: %w", err)
	}
	defer f.Close()

	records, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Read parses NDJSON records from a reader, one record per line. Blank lines
// are ignored; anything else that fails to decode or validate is fatal and
// reported with its line number.
func Read(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	// Allow large lines for records carrying sizable example values.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []Record
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		if err := rec.decode(); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning artifact: %w", err)
	}
	return records, nil
}

// ReadBytes is a convenience for parsing from a byte slice.
func ReadBytes(data []byte) ([]Record, error) {
	return Read(bytes.NewReader(data))
}
