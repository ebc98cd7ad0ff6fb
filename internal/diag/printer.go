package diag

import (
	"fmt"
	"go/token"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColorMode selects whether diagnostics are colorized.
type ColorMode string

// Color modes accepted on the command line.
const (
	ColorAuto ColorMode = "auto"
	ColorOn   ColorMode = "on"
	ColorOff  ColorMode = "off"
)

// ParseColorMode parses auto|on|off.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorOn, ColorOff:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto|on|off)", s)
	}
}

// Printer writes diagnostics as "file:line:col: error: message" lines
// and verbose traces through a slog text logger.
type Printer struct {
	out    io.Writer
	fset   *token.FileSet
	logger *slog.Logger
	label  *color.Color
	kind   *color.Color
	errors int
}

// NewPrinter creates a Printer writing to out. fset may be nil.
func NewPrinter(out io.Writer, fset *token.FileSet, mode ColorMode) *Printer {
	p := &Printer{
		out:    out,
		fset:   fset,
		logger: slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug})),
		label:  color.New(color.FgRed, color.Bold),
		kind:   color.New(color.FgYellow),
	}

	if useColor(out, mode) {
		p.label.EnableColor()
		p.kind.EnableColor()
	} else {
		p.label.DisableColor()
		p.kind.DisableColor()
	}

	return p
}

// SetFileSet sets the file set positions are resolved against.
func (p *Printer) SetFileSet(fset *token.FileSet) {
	p.fset = fset
}

// Report implements Reporter.
func (p *Printer) Report(d Diagnostic) {
	p.errors++

	prefix := ""
	if p.fset != nil && d.Pos.IsValid() {
		prefix = p.fset.Position(d.Pos).String() + ": "
	}

	_, _ = fmt.Fprintf(p.out, "%s%s %s %s\n", prefix, p.label.Sprint("error:"), d.Message, p.kind.Sprintf("[%s]", d.Kind))
}

// Logf implements Reporter.
func (p *Printer) Logf(format string, args ...any) {
	p.logger.Debug(fmt.Sprintf(format, args...))
}

// ErrorCount returns how many diagnostics were reported.
func (p *Printer) ErrorCount() int {
	return p.errors
}

func useColor(out io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorOn:
		return true
	case ColorOff:
		return false
	}

	f, ok := out.(*os.File)
	if !ok {
		return false
	}

	return term.IsTerminal(int(f.Fd())) && os.Getenv("NO_COLOR") == ""
}
