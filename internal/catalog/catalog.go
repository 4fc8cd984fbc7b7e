package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/circdesk/internal/models"
)

var (
	ErrDuplicateID     = errors.New("book ID already exists")
	ErrInvalidArgument = errors.New("invalid argument")
)

const rule = "-----------------------------------------------------"

// Catalog holds the library's books in insertion order.
// It is not safe for concurrent use.
type Catalog struct {
	records []*models.Record
}

func New() *Catalog {
	return &Catalog{}
}

// Add appends a record, rejecting nil records and ids already on the shelf
func (c *Catalog) Add(r *models.Record) error {
	if r == nil {
		return fmt.Errorf("%w: nil book", ErrInvalidArgument)
	}
	if _, exists := c.FindByID(r.ID); exists {
		return fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
	}
	c.records = append(c.records, r)
	slog.Debug("Added book", "id", r.ID, "title", r.Title, "category", r.Category.String())
	return nil
}

func (c *Catalog) FindByID(id int) (*models.Record, bool) {
	for _, r := range c.records {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// FindByTitle returns the first book whose title matches exactly (case-sensitive)
func (c *Catalog) FindByTitle(title string) (*models.Record, bool) {
	for _, r := range c.records {
		if r.Title == title {
			return r, true
		}
	}
	return nil, false
}

// Remove drops the book with the given id and reports whether one was removed
func (c *Catalog) Remove(id int) bool {
	for i, r := range c.records {
		if r.ID != id {
			continue
		}
		copy(c.records[i:], c.records[i+1:])
		c.records[len(c.records)-1] = nil
		c.records = c.records[:len(c.records)-1]
		slog.Debug("Removed book", "id", id)
		return true
	}
	return false
}

// All returns the books in insertion order
func (c *Catalog) All() []*models.Record {
	result := make([]*models.Record, len(c.records))
	copy(result, c.records)
	return result
}

func (c *Catalog) Len() int {
	return len(c.records)
}

// ListAll renders the full catalog table followed by the number of books held
func (c *Catalog) ListAll() string {
	var b strings.Builder
	b.WriteString("\n=================== Library Books ===================\n")
	fmt.Fprintf(&b, "%-6s%-25s%-20s%-10s\n", "ID", "Title", "Author", "Status")
	b.WriteString(rule + "\n")
	for _, r := range c.records {
		b.WriteString(r.Display())
		b.WriteByte('\n')
	}
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Total Books: %d\n", c.Len())
	return b.String()
}
