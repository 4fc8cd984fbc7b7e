package seed

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Write saves entries to path in the format implied by its extension
func Write(path string, entries []Entry) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to marshal YAML: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write YAML file: %w", err)
		}
	case ".jsonl", ".json":
		var buf bytes.Buffer
		for _, e := range entries {
			line, err := jsoniter.ConfigFastest.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal book %d: %w", e.ID, err)
			}
			buf.Write(line)
			buf.WriteByte('\n')
		}
		if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write JSONL file: %w", err)
		}
	case ".parquet":
		if err := parquet.WriteFile(path, entries); err != nil {
			return fmt.Errorf("failed to write parquet file: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s (supported: .yaml, .jsonl, .parquet)", ErrUnsupportedFormat, ext)
	}
	return nil
}
