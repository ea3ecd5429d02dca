package decoration

import (
	"regexp"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/textkernel/textmodel/internal/buffer"
	"github.com/textkernel/textmodel/internal/interval"
)

// OverviewRulerLane selects which lane of the overview ruler a
// decoration paints.
type OverviewRulerLane uint8

const (
	OverviewRulerLaneLeft OverviewRulerLane = 1 << iota
	OverviewRulerLaneCenter
	OverviewRulerLaneRight
	OverviewRulerLaneFull = OverviewRulerLaneLeft | OverviewRulerLaneCenter | OverviewRulerLaneRight
)

// OverviewRulerOptions describes how a decoration paints the overview
// ruler. A decoration with nil OverviewRuler does not appear there at
// all and is stored in the non-ruler tree.
type OverviewRulerOptions struct {
	Color string
	Lane  OverviewRulerLane
}

// Options is the styling and behavior bag attached to a decoration.
type Options struct {
	ClassName     string
	IsWholeLine   bool
	Stickiness    interval.Stickiness
	OverviewRuler *OverviewRulerOptions
}

// Decoration is a fully resolved decoration: its ID, current range, and
// options.
type Decoration struct {
	ID      string
	OwnerID int
	Range   buffer.Range
	Options Options
}

// NewDecoration is a decoration submitted for creation, before an ID is
// allocated.
type NewDecoration struct {
	Range   buffer.Range
	Options Options
}

var classNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9-]`)

// SanitizeClassName replaces every character outside [A-Za-z0-9-] with a
// space, so host-supplied class names can never break out of a CSS
// class-attribute context.
func SanitizeClassName(name string) string {
	return classNameSanitizer.ReplaceAllString(name, " ")
}

// ValidateOverviewRulerColor reports whether color parses as a CSS color
// go-colorful understands (hex, within its supported forms). An empty
// color is valid (it just renders nothing).
func ValidateOverviewRulerColor(color string) bool {
	if color == "" {
		return true
	}
	_, err := colorful.Hex(color)
	return err == nil
}
