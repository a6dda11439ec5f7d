package docxgen

import (
	"fmt"
	"strings"
)

// Kind tags an ElementDescriptor
type Kind string

const (
	KindDocument    Kind = "Document"
	KindParagraph   Kind = "Paragraph"
	KindText        Kind = "Text"
	KindBreak       Kind = "Break"
	KindBold        Kind = "Bold"
	KindItalic      Kind = "Italic"
	KindUnderline   Kind = "Underline"
	KindStrike      Kind = "Strike"
	KindSuperscript Kind = "Superscript"
	KindSubscript   Kind = "Subscript"
)

// Property names understood by the reconciler. Unknown properties are ignored.
const (
	// PropText is the string content of a Text element
	PropText = "text"
	// PropBold, PropItalic, PropStrike, PropSuperscript and PropSubscript take a bool
	PropBold        = "bold"
	PropItalic      = "italic"
	PropStrike      = "strike"
	PropSuperscript = "superscript"
	PropSubscript   = "subscript"
	// PropUnderline takes a bool (single underline) or an underline style name such as "double"
	PropUnderline = "underline"
	// PropColor takes an RGB hex string such as "FF0000" or "#ff0000", or "auto"
	PropColor = "color"
	// PropSize takes a font size in points (int or float64, rounded to half-points)
	PropSize = "size"
	// PropAlign takes left, center, right or justify (Paragraph only)
	PropAlign = "align"
)

// Props holds element properties
type Props map[string]any

// ElementDescriptor is one node of a declarative document tree. Trees are plain data:
// the core reads them and never modifies them.
type ElementDescriptor struct {
	Kind     Kind
	Props    Props
	Children []ElementDescriptor
}

// Element builds a descriptor of any kind. Use it for kinds without a dedicated constructor.
func Element(kind Kind, props Props, children ...ElementDescriptor) ElementDescriptor {
	return ElementDescriptor{Kind: kind, Props: props, Children: children}
}

// Document builds the root element
func Document(children ...ElementDescriptor) ElementDescriptor {
	return Element(KindDocument, nil, children...)
}

// Paragraph builds a paragraph element
func Paragraph(children ...ElementDescriptor) ElementDescriptor {
	return Element(KindParagraph, nil, children...)
}

// Text builds a text element. Line breaks inside s start new paragraphs.
func Text(s string, children ...ElementDescriptor) ElementDescriptor {
	return Element(KindText, Props{PropText: s}, children...)
}

// Break builds an explicit line break within the current paragraph
func Break() ElementDescriptor {
	return Element(KindBreak, nil)
}

// Bold renders its children in bold
func Bold(children ...ElementDescriptor) ElementDescriptor {
	return Element(KindBold, nil, children...)
}

// Italic renders its children in italics
func Italic(children ...ElementDescriptor) ElementDescriptor {
	return Element(KindItalic, nil, children...)
}

// Underline renders its children with a single underline
func Underline(children ...ElementDescriptor) ElementDescriptor {
	return Element(KindUnderline, nil, children...)
}

// Strike renders its children struck through
func Strike(children ...ElementDescriptor) ElementDescriptor {
	return Element(KindStrike, nil, children...)
}

// Superscript raises its children
func Superscript(children ...ElementDescriptor) ElementDescriptor {
	return Element(KindSuperscript, nil, children...)
}

// Subscript lowers its children
func Subscript(children ...ElementDescriptor) ElementDescriptor {
	return Element(KindSubscript, nil, children...)
}

// WithProps returns a copy of e with props merged over its existing properties.
// The receiver's map is never modified.
func (e ElementDescriptor) WithProps(props Props) ElementDescriptor {
	merged := make(Props, len(e.Props)+len(props))
	for k, v := range e.Props {
		merged[k] = v
	}
	for k, v := range props {
		merged[k] = v
	}
	e.Props = merged
	return e
}

// Prop returns a property value
func (e ElementDescriptor) Prop(name string) (any, bool) {
	if e.Props == nil {
		return nil, false
	}
	v, ok := e.Props[name]
	return v, ok
}

// String renders a short description of the node, used in error messages
func (e ElementDescriptor) String() string {
	kind := string(e.Kind)
	if kind == "" {
		kind = "<empty>"
	}
	if e.Kind == KindText {
		if s, ok := e.Props[PropText].(string); ok {
			const maxRunes = 24
			if len([]rune(s)) > maxRunes {
				s = string([]rune(s)[:maxRunes]) + "..."
			}
			return fmt.Sprintf("%s(%q)", kind, s)
		}
	}
	if len(e.Children) > 0 {
		return fmt.Sprintf("%s[%d children]", kind, len(e.Children))
	}
	return kind
}

// childPath builds the path of the i-th child below parent
func childPath(parent string, child ElementDescriptor, i int) string {
	var sb strings.Builder
	sb.WriteString(parent)
	sb.WriteByte('/')
	if child.Kind == "" {
		sb.WriteString("<empty>")
	} else {
		sb.WriteString(string(child.Kind))
	}
	fmt.Fprintf(&sb, "[%d]", i)
	return sb.String()
}
