package report

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/circdesk/internal/models"
)

// DefaultFile is where issue reports are appended when no file is configured
const DefaultFile = "issued_books.txt"

// Marker is written after the id and title of every saved book
const Marker = "Issued Book Saved"

var (
	ErrIO              = errors.New("report file error")
	ErrInvalidArgument = errors.New("invalid argument")
)

// Writer appends one line per saved book to a plain text report
type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// Line formats the report line for a book, without the trailing newline
func Line(r *models.Record) string {
	return fmt.Sprintf("%-6d%-25s%-20s", r.ID, r.Title, Marker)
}

// Append opens filename for appending (creating it if needed), writes the
// book's report line and closes the file again.
func (w *Writer) Append(r *models.Record, filename string) (err error) {
	if r == nil {
		return fmt.Errorf("%w: nil book", ErrInvalidArgument)
	}

	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: cannot open file %s: %w", ErrIO, filename, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: failed to close %s: %w", ErrIO, filename, cerr)
		}
	}()

	if _, err := fmt.Fprintln(f, Line(r)); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", ErrIO, filename, err)
	}

	slog.Debug("Saved book to report", "id", r.ID, "file", filename)
	return nil
}
