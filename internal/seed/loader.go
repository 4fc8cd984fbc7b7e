package seed

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/circdesk/internal/catalog"
)

var ErrUnsupportedFormat = errors.New("unsupported seed file format")

// Loader reads seed entries from a YAML, JSONL or Parquet file
type Loader struct {
	path string
}

// NewLoader creates a new seed loader
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
	}
}

// Load loads entries from the seed file, detecting the format from its extension
func (l *Loader) Load() ([]Entry, error) {
	ext := strings.ToLower(filepath.Ext(l.path))

	switch ext {
	case ".yaml", ".yml":
		return l.loadYAML()
	case ".jsonl", ".json":
		return l.loadJSONL()
	case ".parquet":
		return l.loadParquet()
	default:
		return nil, fmt.Errorf("%w: %s (supported: .yaml, .jsonl, .parquet)", ErrUnsupportedFormat, ext)
	}
}

func (l *Loader) loadYAML() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse YAML seed file: %w", err)
	}

	slog.Debug("Loaded YAML seed file", "path", l.path, "entries", len(entries))
	return entries, nil
}

func (l *Loader) loadJSONL() ([]Entry, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var entry Entry
		if err := jsoniter.ConfigFastest.Unmarshal(line, &entry); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}
		entries = append(entries, entry)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading seed file: %w", err)
	}

	slog.Debug("Loaded JSONL seed file", "path", l.path, "entries", len(entries), "lines", lineNum)
	return entries, nil
}

func (l *Loader) loadParquet() ([]Entry, error) {
	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Entry](pf)
	defer reader.Close()

	entries := make([]Entry, 0, pf.NumRows())
	rows := make([]Entry, 64)
	for {
		n, err := reader.Read(rows)
		entries = append(entries, rows[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Loaded Parquet seed file", "path", l.path, "entries", len(entries))
	return entries, nil
}

// Populate adds every entry to the catalog. Entries that fail are skipped and
// their errors returned joined; the entries that succeeded stay in the catalog.
func Populate(cat *catalog.Catalog, entries []Entry) error {
	var errs []error
	for _, e := range entries {
		r, err := e.Record()
		if err != nil {
			errs = append(errs, fmt.Errorf("book %d: %w", e.ID, err))
			continue
		}
		if err := cat.Add(r); err != nil {
			errs = append(errs, fmt.Errorf("book %d: %w", e.ID, err))
		}
	}
	return errors.Join(errs...)
}
