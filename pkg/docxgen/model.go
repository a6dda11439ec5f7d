package docxgen

import (
	"strings"
)

// Alignment is a paragraph justification
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// DocumentModel is the canonical document produced by the reconciler
type DocumentModel struct {
	Blocks []Block
}

// Block is a body-level node. ParagraphBlock is the only block a body may hold; a Run placed
// directly in Blocks satisfies the interface so hand-built models can be checked, and
// the serializer rejects it.
type Block interface {
	blockKind() string
}

// ParagraphBlock is a block holding an ordered list of runs
type ParagraphBlock struct {
	Alignment Alignment
	Runs      []Run
}

func (p *ParagraphBlock) blockKind() string { return "paragraph" }

// Run is the smallest styled unit of text. Text is non-empty unless Break is set.
type Run struct {
	Text  string
	Style RunStyle
	Break bool

	// path and node name the element the run was reconciled from, unset for hand-built models
	path string
	node *ElementDescriptor
}

func (r *Run) blockKind() string { return "run" }

// Paragraphs returns the paragraph blocks in document order
func (m *DocumentModel) Paragraphs() []*ParagraphBlock {
	paras := make([]*ParagraphBlock, 0, len(m.Blocks))
	for _, b := range m.Blocks {
		if p, ok := b.(*ParagraphBlock); ok {
			paras = append(paras, p)
		}
	}
	return paras
}

// RunCount returns the total number of runs in the document
func (m *DocumentModel) RunCount() int {
	n := 0
	for _, p := range m.Paragraphs() {
		n += len(p.Runs)
	}
	return n
}

// Text returns the document text with paragraphs joined by newlines
func (m *DocumentModel) Text() string {
	paras := m.Paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.Text()
	}
	return strings.Join(texts, "\n")
}

// Text returns the concatenated text of the paragraph's runs, breaks excluded
func (p *ParagraphBlock) Text() string {
	var sb strings.Builder
	for _, r := range p.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

// stats counts words and characters for the extended properties part
func (m *DocumentModel) stats() (words, chars int) {
	for _, p := range m.Paragraphs() {
		text := p.Text()
		words += len(strings.Fields(text))
		for _, r := range text {
			if r != ' ' {
				chars++
			}
		}
	}
	return words, chars
}
