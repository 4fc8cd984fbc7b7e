package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAlreadyIssued   = errors.New("book already issued")
	ErrNotIssued       = errors.New("book was not issued")
	ErrUnknownCategory = errors.New("unknown category")
)

// Category is the closed set of shelf categories a book can belong to
type Category int

const (
	Novel Category = iota + 1
	Science
	History
)

// fineRates maps each category to its fine rate per overdue unit
var fineRates = map[Category]float64{
	Novel:   2.0,
	Science: 3.5,
	History: 1.5,
}

var categoryNames = map[Category]string{
	Novel:   "novel",
	Science: "science",
	History: "history",
}

// ParseCategory accepts the menu codes ("1", "2", "3") or a category name
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "1", "novel":
		return Novel, nil
	case "2", "science":
		return Science, nil
	case "3", "history":
		return History, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) Valid() bool {
	_, ok := fineRates[c]
	return ok
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Record represents a single book held by the catalog
type Record struct {
	ID       int
	Title    string
	Author   string
	Category Category
	Issued   bool
}

// NewRecord creates an available book in the given category
func NewRecord(id int, title, author string, category Category) (*Record, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(category))
	}
	return &Record{
		ID:       id,
		Title:    title,
		Author:   author,
		Category: category,
	}, nil
}

// Issue marks the book as lent out
func (r *Record) Issue() error {
	if r.Issued {
		return ErrAlreadyIssued
	}
	r.Issued = true
	return nil
}

// Return marks the book as back on the shelf
func (r *Record) Return() error {
	if !r.Issued {
		return ErrNotIssued
	}
	r.Issued = false
	return nil
}

func (r *Record) Status() string {
	if r.Issued {
		return "Issued"
	}
	return "Available"
}

func (r *Record) FineRate() float64 {
	return fineRates[r.Category]
}

// Display formats the record as a fixed-width catalog row
func (r *Record) Display() string {
	return fmt.Sprintf("%-6d%-25s%-20s%-10s", r.ID, r.Title, r.Author, r.Status())
}
