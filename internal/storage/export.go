package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/vovakirdan/pushcore/internal/core"
)

// Export writes a session's moves to path as zstd-compressed JSONL, one
// line per move. It returns the number of lines written.
func (s *Store) Export(sessionID, path string) (int, error) {
	if _, err := s.SessionByID(sessionID); err != nil {
		return 0, err
	}
	records, err := s.Moves(sessionID)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("storage: cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot create export: %w", err)
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, fmt.Errorf("storage: cannot start encoder: %w", err)
	}
	w := bufio.NewWriterSize(enc, 128*1024)

	for _, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			enc.Close()
			return 0, fmt.Errorf("storage: cannot encode move: %w", err)
		}
		w.Write(b)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		enc.Close()
		return 0, fmt.Errorf("storage: cannot write export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("storage: cannot finish export: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("storage: cannot close export: %w", err)
	}
	return len(records), nil
}

// ReadExport decodes a file written by Export.
func ReadExport(path string) ([]MoveRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open export: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot start decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)

	var records []MoveRecord
	for sc.Scan() {
		var r MoveRecord
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("storage: line %d: %w", len(records)+1, err)
		}
		if r.Direction, err = core.ParseDirection(r.Dir); err != nil {
			return nil, fmt.Errorf("storage: line %d: %w", len(records)+1, err)
		}
		records = append(records, r)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("storage: cannot read export: %w", err)
	}
	return records, nil
}
