package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	r, err := NewRecord(101, "Pride_and_Prejudice", "Jane Austen", Novel)
	require.NoError(t, err)

	assert.Equal(t, 101, r.ID)
	assert.False(t, r.Issued)
	assert.Equal(t, "Available", r.Status())

	_, err = NewRecord(1, "x", "y", Category(9))
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestFineRate(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		expected float64
	}{
		{name: "novel", category: Novel, expected: 2.0},
		{name: "science", category: Science, expected: 3.5},
		{name: "history", category: History, expected: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecord(1, "t", "a", tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, r.FineRate())
		})
	}
}

func TestIssueAndReturn(t *testing.T) {
	r, err := NewRecord(201, "Physics_Fundamentals", "H.C. Verma", Science)
	require.NoError(t, err)

	require.NoError(t, r.Issue())
	assert.Equal(t, "Issued", r.Status())

	err = r.Issue()
	assert.True(t, errors.Is(err, ErrAlreadyIssued))
	assert.True(t, r.Issued)

	require.NoError(t, r.Return())
	assert.Equal(t, "Available", r.Status())

	err = r.Return()
	assert.ErrorIs(t, err, ErrNotIssued)
	assert.False(t, r.Issued)
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in       string
		expected Category
		ok       bool
	}{
		{"1", Novel, true},
		{"2", Science, true},
		{"3", History, true},
		{"Novel", Novel, true},
		{" history ", History, true},
		{"SCIENCE", Science, true},
		{"4", 0, false},
		{"poetry", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if tt.ok {
			require.NoError(t, err, tt.in)
			assert.Equal(t, tt.expected, got, tt.in)
		} else {
			assert.ErrorIs(t, err, ErrUnknownCategory, tt.in)
		}
	}
}

func TestDisplay(t *testing.T) {
	r, err := NewRecord(301, "World_History", "K. Roberts", History)
	require.NoError(t, err)

	line := r.Display()
	assert.Equal(t, "301   World_History            K. Roberts          Available ", line)

	require.NoError(t, r.Issue())
	assert.Equal(t, "301   World_History            K. Roberts          Issued    ", r.Display())
}
