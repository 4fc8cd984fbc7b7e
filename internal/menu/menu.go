package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/lehigh-university-libraries/circdesk/internal/catalog"
	"github.com/lehigh-university-libraries/circdesk/internal/fine"
	"github.com/lehigh-university-libraries/circdesk/internal/models"
	"github.com/lehigh-university-libraries/circdesk/internal/report"
)

var ErrInvalidInput = errors.New("invalid input")

// errInputEnded marks failures reading the next token; the menu stops on them
var errInputEnded = errors.New("input ended")

// maxTokenSize bounds a single whitespace separated input token
const maxTokenSize = 1024 * 1024

const banner = `
=========== LIBRARY MANAGEMENT SYSTEM ===========
1. Display All Books
2. Add Book
3. Remove Book
4. Search Book by ID
5. Search Book by Title
6. Issue Book
7. Return Book
8. Save Issued Book Report
9. Fine Calculation
0. Exit
Enter your choice: `

// Options configures a Controller
type Options struct {
	ReportFile string
	Currency   string
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
}

// Controller runs the interactive circulation menu against a catalog
type Controller struct {
	catalog    *catalog.Catalog
	reports    *report.Writer
	reportFile string
	currency   string
	scanner    *bufio.Scanner
	out        io.Writer
	errOut     io.Writer
}

// New creates a menu controller. Input is read as whitespace separated tokens.
func New(cat *catalog.Catalog, opts Options) *Controller {
	scanner := bufio.NewScanner(opts.In)
	scanner.Buffer(make([]byte, 0, 64*1024), maxTokenSize)
	scanner.Split(bufio.ScanWords)

	if opts.ReportFile == "" {
		opts.ReportFile = report.DefaultFile
	}
	if opts.Currency == "" {
		opts.Currency = fine.DefaultCurrency
	}
	if opts.Err == nil {
		opts.Err = opts.Out
	}

	return &Controller{
		catalog:    cat,
		reports:    report.NewWriter(),
		reportFile: opts.ReportFile,
		currency:   opts.Currency,
		scanner:    scanner,
		out:        opts.Out,
		errOut:     opts.Err,
	}
}

// Run loops until the exit command, end of input or ctx cancellation.
// Operation errors are printed and never stop the loop.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			fmt.Fprintln(c.out, "\nExiting system...")
			return nil
		}

		fmt.Fprint(c.out, banner)

		tok, err := c.next(ctx)
		if err != nil {
			return c.stop(err)
		}

		choice, err := strconv.Atoi(tok)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid choice!")
			continue
		}
		if choice == 0 {
			fmt.Fprintln(c.out, "Exiting system...")
			return nil
		}

		if err := c.dispatch(ctx, choice); err != nil {
			if errors.Is(err, errInputEnded) {
				return c.stop(err)
			}
			slog.Warn("Menu operation failed", "choice", choice, "err", err)
			fmt.Fprintf(c.errOut, "Error: %v\n", err)
		}
	}
}

// stop ends the loop after a read failure. Every cause is a clean exit.
func (c *Controller) stop(err error) error {
	if !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		slog.Warn("Unable to read menu input", "err", err)
	}
	fmt.Fprintln(c.out, "\nExiting system...")
	return nil
}

func (c *Controller) dispatch(ctx context.Context, choice int) error {
	switch choice {
	case 1:
		fmt.Fprint(c.out, c.catalog.ListAll())
		return nil
	case 2:
		return c.addBook(ctx)
	case 3:
		id, err := c.promptInt(ctx, "Enter Book ID to remove: ")
		if err != nil {
			return err
		}
		if c.catalog.Remove(id) {
			fmt.Fprintln(c.out, "Book removed.")
		} else {
			fmt.Fprintln(c.out, "Book not found.")
		}
		return nil
	case 4:
		id, err := c.promptInt(ctx, "Enter Book ID to search: ")
		if err != nil {
			return err
		}
		r, ok := c.catalog.FindByID(id)
		c.show(r, ok)
		return nil
	case 5:
		title, err := c.prompt(ctx, "Enter Title to search: ")
		if err != nil {
			return err
		}
		r, ok := c.catalog.FindByTitle(title)
		c.show(r, ok)
		return nil
	case 6:
		return c.withBook(ctx, "Enter Book ID to issue: ", func(r *models.Record) error {
			if err := r.Issue(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Book issued successfully!")
			return nil
		})
	case 7:
		return c.withBook(ctx, "Enter Book ID to return: ", func(r *models.Record) error {
			if err := r.Return(); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Book returned successfully!")
			return nil
		})
	case 8:
		return c.withBook(ctx, "Enter Book ID to save report: ", func(r *models.Record) error {
			if err := c.reports.Append(r, c.reportFile); err != nil {
				return err
			}
			fmt.Fprintln(c.out, "Book details saved to file.")
			return nil
		})
	case 9:
		return c.combineFines(ctx)
	default:
		fmt.Fprintln(c.out, "Invalid choice!")
		return nil
	}
}

func (c *Controller) addBook(ctx context.Context) error {
	id, err := c.promptInt(ctx, "Enter Book ID: ")
	if err != nil {
		return err
	}
	title, err := c.prompt(ctx, "Enter Title: ")
	if err != nil {
		return err
	}
	author, err := c.prompt(ctx, "Enter Author: ")
	if err != nil {
		return err
	}
	kind, err := c.prompt(ctx, "Type (1.Novel 2.Science 3.History): ")
	if err != nil {
		return err
	}

	category, err := models.ParseCategory(kind)
	if err != nil {
		fmt.Fprintln(c.out, "Invalid Type!")
		return nil
	}

	r, err := models.NewRecord(id, title, author, category)
	if err != nil {
		return err
	}
	if err := c.catalog.Add(r); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Book added successfully!")
	return nil
}

func (c *Controller) combineFines(ctx context.Context) error {
	first, err := c.prompt(ctx, "Enter fine1 and fine2 amounts: ")
	if err != nil {
		return err
	}
	second, err := c.next(ctx)
	if err != nil {
		return err
	}

	a, err := fine.Parse(first)
	if err != nil {
		return err
	}
	b, err := fine.Parse(second)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Total Fine Amount: %s\n", fine.Combine(a, b).Format(c.currency))
	return nil
}

func (c *Controller) withBook(ctx context.Context, label string, fn func(*models.Record) error) error {
	id, err := c.promptInt(ctx, label)
	if err != nil {
		return err
	}
	r, ok := c.catalog.FindByID(id)
	if !ok {
		fmt.Fprintln(c.out, "Book not found.")
		return nil
	}
	return fn(r)
}

func (c *Controller) show(r *models.Record, ok bool) {
	if !ok {
		fmt.Fprintln(c.out, "Not found.")
		return
	}
	fmt.Fprintln(c.out, r.Display())
	fmt.Fprintf(c.out, "Fine Rate: %s per overdue unit\n", fine.ForRecord(r, 1).Format(c.currency))
}

func (c *Controller) prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)
	return c.next(ctx)
}

func (c *Controller) promptInt(ctx context.Context, label string) (int, error) {
	tok, err := c.prompt(ctx, label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidInput, tok)
	}
	return n, nil
}

type token struct {
	text string
	ok   bool
	err  error
}

// next reads the next input token, giving up when ctx is canceled
func (c *Controller) next(ctx context.Context) (string, error) {
	ch := make(chan token, 1)
	go func() {
		ok := c.scanner.Scan()
		ch <- token{text: c.scanner.Text(), ok: ok, err: c.scanner.Err()}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", errInputEnded, ctx.Err())
	case t := <-ch:
		if !t.ok {
			if t.err != nil {
				return "", fmt.Errorf("%w: %w", errInputEnded, t.err)
			}
			return "", fmt.Errorf("%w: %w", errInputEnded, io.EOF)
		}
		return t.text, nil
	}
}
