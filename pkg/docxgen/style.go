package docxgen

import (
	"fmt"
	"math"
	"strings"
)

// StyleContext is the formatting state inherited by a subtree. It is a value: the
// reconciler derives a new context for each child scope and the caller's copy is
// untouched when the child returns.
type StyleContext struct {
	Bold        bool
	Italic      bool
	Strike      bool
	Superscript bool
	Subscript   bool
	// Underline is the underline style name, empty for none
	Underline string
	// Color is the colour exactly as authored
	Color string
	// Size is the font size in half-points, 0 to inherit the document default
	Size int
}

// RunStyle is the run-level formatting produced by ResolveStyle
type RunStyle struct {
	Bold        bool
	Italic      bool
	Strike      bool
	Superscript bool
	Subscript   bool
	Underline   string
	Color       string
	Size        int
}

// IsZero reports whether the style carries no formatting at all
func (s RunStyle) IsZero() bool {
	return s == RunStyle{}
}

// Validate reports the first internal inconsistency in a resolved style
func (s RunStyle) Validate() error {
	if s.Superscript && s.Subscript {
		return fmt.Errorf("superscript and subscript are mutually exclusive")
	}
	if s.Underline != "" && !underlineStyles[s.Underline] {
		return fmt.Errorf("unknown underline style %q", s.Underline)
	}
	if s.Color != "" && !validColor(s.Color) {
		return fmt.Errorf("color %q is not a 6-digit hex value or auto", s.Color)
	}
	if s.Size < 0 || s.Size > maxHalfPoints {
		return fmt.Errorf("font size %d half-points is out of range", s.Size)
	}
	return nil
}

// maxHalfPoints is the largest w:sz value Word accepts (1638 points)
const maxHalfPoints = 3276

// underlineStyles lists the ST_Underline values accepted for PropUnderline
var underlineStyles = map[string]bool{
	"single":          true,
	"words":           true,
	"double":          true,
	"thick":           true,
	"dotted":          true,
	"dottedHeavy":     true,
	"dash":            true,
	"dashedHeavy":     true,
	"dashLong":        true,
	"dashLongHeavy":   true,
	"dotDash":         true,
	"dashDotHeavy":    true,
	"dotDotDash":      true,
	"dashDotDotHeavy": true,
	"wave":            true,
	"wavyHeavy":       true,
	"wavyDouble":      true,
}

func validColor(c string) bool {
	if c == "auto" {
		return true
	}
	if len(c) != 6 {
		return false
	}
	for _, r := range c {
		switch {
		case r >= '0' && r <= '9', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// ResolveStyle maps accumulated formatting state to run properties. It is pure:
// the same context always yields the same style.
func ResolveStyle(ctx StyleContext) RunStyle {
	style := RunStyle{
		Bold:        ctx.Bold,
		Italic:      ctx.Italic,
		Strike:      ctx.Strike,
		Superscript: ctx.Superscript,
		Subscript:   ctx.Subscript,
		Size:        ctx.Size,
	}
	if ctx.Underline != "none" {
		style.Underline = ctx.Underline
	}
	if ctx.Color != "" {
		c := strings.TrimPrefix(strings.TrimSpace(ctx.Color), "#")
		if !strings.EqualFold(c, "auto") {
			c = strings.ToUpper(c)
		} else {
			c = "auto"
		}
		style.Color = c
	}
	return style
}

// withKind applies the toggle carried by a formatting element
func (c StyleContext) withKind(kind Kind) StyleContext {
	switch kind {
	case KindBold:
		c.Bold = true
	case KindItalic:
		c.Italic = true
	case KindUnderline:
		c.Underline = "single"
	case KindStrike:
		c.Strike = true
	case KindSuperscript:
		c.Superscript = true
	case KindSubscript:
		c.Subscript = true
	}
	return c
}

// withProps applies formatting properties. Type mismatches are reported so the
// reconciler can name the offending node.
func (c StyleContext) withProps(props Props) (StyleContext, error) {
	if len(props) == 0 {
		return c, nil
	}

	flags := []struct {
		name string
		dst  *bool
	}{
		{PropBold, &c.Bold},
		{PropItalic, &c.Italic},
		{PropStrike, &c.Strike},
		{PropSuperscript, &c.Superscript},
		{PropSubscript, &c.Subscript},
	}
	for _, f := range flags {
		v, ok := props[f.name]
		if !ok {
			continue
		}
		b, ok := v.(bool)
		if !ok {
			return c, fmt.Errorf("property %q must be a bool, got %T", f.name, v)
		}
		*f.dst = b
	}

	if v, ok := props[PropUnderline]; ok {
		switch u := v.(type) {
		case bool:
			if u {
				c.Underline = "single"
			} else {
				c.Underline = ""
			}
		case string:
			c.Underline = u
		default:
			return c, fmt.Errorf("property %q must be a bool or string, got %T", PropUnderline, v)
		}
	}

	if v, ok := props[PropColor]; ok {
		s, ok := v.(string)
		if !ok {
			return c, fmt.Errorf("property %q must be a string, got %T", PropColor, v)
		}
		c.Color = s
	}

	if v, ok := props[PropSize]; ok {
		var points float64
		switch n := v.(type) {
		case int:
			points = float64(n)
		case int64:
			points = float64(n)
		case float64:
			points = n
		default:
			return c, fmt.Errorf("property %q must be a number, got %T", PropSize, v)
		}
		if points <= 0 || math.IsNaN(points) || math.IsInf(points, 0) {
			return c, fmt.Errorf("property %q must be positive, got %v", PropSize, v)
		}
		c.Size = int(math.Round(points * 2))
	}

	return c, nil
}
