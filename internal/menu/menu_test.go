package menu

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/circdesk/internal/catalog"
	"github.com/lehigh-university-libraries/circdesk/internal/seed"
)

type session struct {
	catalog *catalog.Catalog
	out     *bytes.Buffer
	errOut  *bytes.Buffer
	report  string
}

func run(t *testing.T, input string) session {
	t.Helper()

	cat := catalog.New()
	require.NoError(t, seed.Populate(cat, seed.Default()))

	s := session{
		catalog: cat,
		out:     &bytes.Buffer{},
		errOut:  &bytes.Buffer{},
		report:  filepath.Join(t.TempDir(), "issued_books.txt"),
	}

	c := New(cat, Options{
		ReportFile: s.report,
		In:         strings.NewReader(input),
		Out:        s.out,
		Err:        s.errOut,
	})
	require.NoError(t, c.Run(context.Background()))
	return s
}

func TestEndToEnd(t *testing.T) {
	s := run(t, "6 101 4 101 1 3 201 1 4 201 0")
	out := s.out.String()

	assert.Contains(t, out, "Book issued successfully!")
	assert.Contains(t, out, "101   Pride_and_Prejudice      Jane Austen         Issued    ")
	assert.Contains(t, out, "Total Books: 3")
	assert.Contains(t, out, "Book removed.")
	assert.Contains(t, out, "Total Books: 2")
	assert.Contains(t, out, "Not found.")
	assert.True(t, strings.HasSuffix(out, "Exiting system...\n"))
	assert.Empty(t, s.errOut.String())

	r, ok := s.catalog.FindByID(101)
	require.True(t, ok)
	assert.True(t, r.Issued)
	_, ok = s.catalog.FindByID(201)
	assert.False(t, ok)
}

func TestErrorsDoNotStopTheLoop(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
		wantOut string
	}{
		{name: "double issue", input: "6 301 6 301 0", wantErr: "Error: book already issued", wantOut: "Book issued successfully!"},
		{name: "return available", input: "7 201 0", wantErr: "Error: book was not issued"},
		{name: "duplicate add", input: "2 101 Emma Austen 1 0", wantErr: "Error: book ID already exists: 101"},
		{name: "bad id", input: "4 abc 0", wantErr: "Error: invalid input"},
		{name: "bad fine", input: "9 ten 5 0", wantErr: "Error: invalid amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := run(t, tt.input)
			assert.Contains(t, s.errOut.String(), tt.wantErr)
			assert.Contains(t, s.out.String(), tt.wantOut)
			assert.True(t, strings.HasSuffix(s.out.String(), "Exiting system...\n"))
		})
	}
}

func TestAddBook(t *testing.T) {
	s := run(t, "2 401 Cosmos Sagan 2 5 Cosmos 2 402 Odd Nobody 7 0")
	out := s.out.String()

	assert.Contains(t, out, "Book added successfully!")
	assert.Contains(t, out, "401   Cosmos")
	assert.Contains(t, out, "Fine Rate: Rs 3.50 per overdue unit")
	assert.Contains(t, out, "Invalid Type!")
	assert.Equal(t, 4, s.catalog.Len())

	_, ok := s.catalog.FindByID(402)
	assert.False(t, ok)
}

func TestSearchByTitle(t *testing.T) {
	s := run(t, "5 World_History 5 world_history 0")
	out := s.out.String()

	assert.Contains(t, out, "301   World_History")
	assert.Contains(t, out, "Not found.")
}

func TestMissingBooks(t *testing.T) {
	s := run(t, "3 999 6 999 7 999 8 999 0")
	assert.Equal(t, 4, strings.Count(s.out.String(), "Book not found."))
	assert.Equal(t, 3, s.catalog.Len())
}

func TestSaveReport(t *testing.T) {
	s := run(t, "6 101 8 101 8 301 0")
	assert.Equal(t, 2, strings.Count(s.out.String(), "Book details saved to file."))

	data, err := os.ReadFile(s.report)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "101   Pride_and_Prejudice"))
	assert.Contains(t, lines[1], "Issued Book Saved")
}

func TestSaveReportFailure(t *testing.T) {
	cat := catalog.New()
	require.NoError(t, seed.Populate(cat, seed.Default()))
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}

	c := New(cat, Options{
		ReportFile: filepath.Join(t.TempDir(), "missing", "dir", "report.txt"),
		In:         strings.NewReader("8 101 1 0"),
		Out:        out,
		Err:        errOut,
	})
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, errOut.String(), "Error: report file error")
	assert.Contains(t, out.String(), "Total Books: 3")
}

func TestFineCalculation(t *testing.T) {
	s := run(t, "9 10.50 5.25 9 5.25 10.50 0")
	assert.Equal(t, 2, strings.Count(s.out.String(), "Total Fine Amount: Rs 15.75"))
}

func TestInvalidChoice(t *testing.T) {
	s := run(t, "12 -1 x 0")
	assert.Equal(t, 3, strings.Count(s.out.String(), "Invalid choice!"))
}

func TestEndOfInputExits(t *testing.T) {
	s := run(t, "1 6")
	assert.True(t, strings.HasSuffix(s.out.String(), "Exiting system...\n"))
	assert.Empty(t, s.errOut.String())
}

func TestCanceledContextExits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &bytes.Buffer{}
	c := New(catalog.New(), Options{In: strings.NewReader("1 0"), Out: out})
	require.NoError(t, c.Run(ctx))
	assert.NotContains(t, out.String(), "LIBRARY MANAGEMENT SYSTEM")
}

func TestLongTitleToken(t *testing.T) {
	s := run(t, "5 "+strings.Repeat("A", 70000)+" 1 0")
	out := s.out.String()

	assert.Contains(t, out, "Not found.")
	assert.Contains(t, out, "Total Books: 3")
	assert.True(t, strings.HasSuffix(out, "Exiting system...\n"))
}

func TestUnreadableInputExitsCleanly(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "oversized choice", input: strings.Repeat("9", maxTokenSize+1) + " 0"},
		{name: "oversized title", input: "5 " + strings.Repeat("A", maxTokenSize+1) + " 1 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := run(t, tt.input)
			assert.True(t, strings.HasSuffix(s.out.String(), "Exiting system...\n"))
			assert.Empty(t, s.errOut.String())
		})
	}
}

func TestDeadlineExits(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	pr, pw := io.Pipe()
	defer pw.Close()

	out := &bytes.Buffer{}
	c := New(catalog.New(), Options{In: pr, Out: out})
	require.NoError(t, c.Run(ctx))
	assert.True(t, strings.HasSuffix(out.String(), "Exiting system...\n"))
}
