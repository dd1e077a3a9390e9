package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/golang/snappy"
)

// Encode writes the report as snappy-framed JSON.
func Encode(w io.Writer, report *Report) error {
	sw := snappy.NewBufferedWriter(w)
	if err := json.NewEncoder(sw).Encode(report); err != nil {
		sw.Close()
		return fmt.Errorf("encode report: %w", err)
	}
	if err := sw.Close(); err != nil {
		return fmt.Errorf("flush report: %w", err)
	}
	return nil
}

// Decode reads a report written by Encode.
func Decode(r io.Reader) (*Report, error) {
	var report Report
	if err := json.NewDecoder(snappy.NewReader(r)).Decode(&report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

// WriteArchive encodes the report into path, replacing any existing file.
func WriteArchive(path string, report *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	if err := Encode(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadArchive decodes the report stored at path.
func ReadArchive(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()
	return Decode(f)
}
