// Package color renders the compare summary with ANSI colors when writing
// to a terminal.
package color

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// ANSI color codes
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
	Bold   = "\033[1m"
)

// Color wraps text in ANSI codes when enabled
type Color struct {
	enabled bool
}

// New returns a Color for out. Colors stay off when enabled is false,
// NO_COLOR is set, TERM is dumb or out is not a terminal.
func New(enabled bool, out *os.File) *Color {
	return &Color{enabled: enabled && shouldEnableColor(out)}
}

func shouldEnableColor(out *os.File) bool {
	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if term := os.Getenv("TERM"); term == "dumb" || term == "" {
		return false
	}
	if out == nil {
		return false
	}
	fd := out.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (c *Color) wrap(code, text string) string {
	if !c.enabled {
		return text
	}
	return code + text + Reset
}

// Add colors additions green
func (c *Color) Add(text string) string { return c.wrap(Green, text) }

// Change colors modifications yellow
func (c *Color) Change(text string) string { return c.wrap(Yellow, text) }

// Destroy colors drops red
func (c *Color) Destroy(text string) string { return c.wrap(Red, text) }

// Bold makes text bold
func (c *Color) Bold(text string) string { return c.wrap(Bold, text) }

// Cyan colors headers and labels
func (c *Color) Cyan(text string) string { return c.wrap(Cyan, text) }

// Symbol returns the colored marker for an add, change or delete action
func (c *Color) Symbol(action string) string {
	switch strings.ToLower(action) {
	case "add":
		return c.Add("+")
	case "change":
		return c.Change("~")
	case "delete":
		return c.Destroy("-")
	default:
		return " "
	}
}

// FormatLine formats one summary entry, e.g. "  + COLUMN Products.Sku"
func (c *Color) FormatLine(action, label string) string {
	return fmt.Sprintf("  %s %s", c.Symbol(action), label)
}

// FormatHeader formats the totals line that opens a summary
func (c *Color) FormatHeader(added, changed, dropped int) string {
	parts := []string{
		c.Add(fmt.Sprintf("%d to add", added)),
		c.Change(fmt.Sprintf("%d to change", changed)),
		c.Destroy(fmt.Sprintf("%d to drop", dropped)),
	}
	return fmt.Sprintf("%s %s.", c.Bold("Changes:"), strings.Join(parts, ", "))
}
