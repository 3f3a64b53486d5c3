// Package output provides context-aware output for mergeto.
// Stdout carries progress and status lines; diagnostics go to stderr
// via the log package.
package output

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"

	"github.com/raphi011/mergeto/internal/styles"
)

type ctxKey struct{}

// Printer writes status lines. Styled lines pass through a colorprofile
// writer so colors are downsampled or stripped for the destination.
type Printer struct {
	w      io.Writer
	styled io.Writer
}

// New creates a new Printer writing to the given writer.
func New(w io.Writer) *Printer {
	return &Printer{w: w, styled: colorprofile.NewWriter(w, os.Environ())}
}

// WithPrinter attaches a Printer writing to w to the context.
func WithPrinter(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, ctxKey{}, New(w))
}

// FromContext retrieves the Printer from context.
// Returns a Printer writing to os.Stdout if none is attached.
func FromContext(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stdout)
}

// Printf writes formatted output.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.w, format, a...)
}

// Step announces a step that is about to run.
func (p *Printer) Step(format string, a ...any) {
	fmt.Fprintf(p.styled, "%s %s\n", styles.StepMark(), fmt.Sprintf(format, a...))
}

// Success reports a completed operation.
func (p *Printer) Success(format string, a ...any) {
	fmt.Fprintf(p.styled, "%s %s\n", styles.SuccessMark(), fmt.Sprintf(format, a...))
}

// Skip reports an operation that was not needed.
func (p *Printer) Skip(format string, a ...any) {
	fmt.Fprintf(p.styled, "%s %s\n", styles.SkipMark(), fmt.Sprintf(format, a...))
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}
