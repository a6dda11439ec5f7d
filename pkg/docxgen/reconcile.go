package docxgen

import (
	"fmt"
	"strings"
)

// reconciler holds the state of one traversal. It is created per call and never shared.
type reconciler struct {
	config *Config
	model  *DocumentModel
	// current is the open paragraph, nil when the next run must open one
	current *ParagraphBlock
	// inParagraph is set while an explicit Paragraph element is being visited
	inParagraph bool
	// align is the alignment given to paragraphs opened by a split
	align Alignment
	depth int
}

// Reconcile converts an element tree into a DocumentModel using the default configuration
func Reconcile(root ElementDescriptor) (*DocumentModel, error) {
	return reconcile(root, DefaultConfig())
}

func reconcile(root ElementDescriptor, config *Config) (*DocumentModel, error) {
	r := &reconciler{
		config: config,
		model:  &DocumentModel{},
	}

	path := string(root.Kind)
	switch {
	case root.Kind == KindDocument:
	case knownKind(root.Kind):
		return nil, newNodeError(InvalidStructure, path, root, "root element must be %s", KindDocument)
	default:
		return nil, newNodeError(UnsupportedElementKind, path, root, "unknown element kind %q", root.Kind)
	}

	ctx, err := StyleContext{}.withProps(root.Props)
	if err != nil {
		return nil, newNodeError(InvalidStructure, path, root, "%v", err)
	}
	if err := r.visitChildren(root, path, ctx); err != nil {
		return nil, err
	}

	// A body needs at least one block
	if len(r.model.Blocks) == 0 {
		r.model.Blocks = append(r.model.Blocks, &ParagraphBlock{})
	}
	return r.model, nil
}

func knownKind(k Kind) bool {
	switch k {
	case KindDocument, KindParagraph, KindText, KindBreak,
		KindBold, KindItalic, KindUnderline, KindStrike, KindSuperscript, KindSubscript:
		return true
	}
	return false
}

func (r *reconciler) visitChildren(node ElementDescriptor, path string, ctx StyleContext) error {
	for i, child := range node.Children {
		if err := r.visit(child, childPath(path, child, i), ctx); err != nil {
			return err
		}
	}
	return nil
}

// visit handles one node. ctx is passed by value so changes made for this subtree
// never leak back to the caller.
func (r *reconciler) visit(node ElementDescriptor, path string, ctx StyleContext) error {
	r.depth++
	defer func() { r.depth-- }()
	if r.config.MaxDepth > 0 && r.depth > r.config.MaxDepth {
		return newNodeError(InvalidStructure, path, node, "tree is nested deeper than %d levels", r.config.MaxDepth)
	}

	switch node.Kind {
	case KindDocument:
		return newNodeError(InvalidStructure, path, node, "%s may only appear as the root", KindDocument)

	case KindParagraph:
		return r.visitParagraph(node, path, ctx)

	case KindText:
		return r.visitText(node, path, ctx)

	case KindBreak:
		if len(node.Children) > 0 {
			return newNodeError(InvalidStructure, path, node, "%s cannot have children", KindBreak)
		}
		ctx, err := ctx.withProps(node.Props)
		if err != nil {
			return newNodeError(InvalidStructure, path, node, "%v", err)
		}
		r.ensureParagraph()
		r.current.Runs = append(r.current.Runs, Run{Break: true, Style: ResolveStyle(ctx), path: path, node: &node})
		return nil

	case KindBold, KindItalic, KindUnderline, KindStrike, KindSuperscript, KindSubscript:
		ctx, err := ctx.withKind(node.Kind).withProps(node.Props)
		if err != nil {
			return newNodeError(InvalidStructure, path, node, "%v", err)
		}
		return r.visitChildren(node, path, ctx)

	default:
		return newNodeError(UnsupportedElementKind, path, node, "unknown element kind %q", node.Kind)
	}
}

func (r *reconciler) visitParagraph(node ElementDescriptor, path string, ctx StyleContext) error {
	if r.inParagraph {
		return newNodeError(InvalidStructure, path, node, "%s cannot contain another %s", KindParagraph, KindParagraph)
	}

	align, err := parseAlignment(node.Props)
	if err != nil {
		return newNodeError(InvalidStructure, path, node, "%v", err)
	}
	ctx, err = ctx.withProps(node.Props)
	if err != nil {
		return newNodeError(InvalidStructure, path, node, "%v", err)
	}

	// An explicit paragraph ends any implicit one
	r.inParagraph = true
	r.align = align
	r.openParagraph()

	err = r.visitChildren(node, path, ctx)

	r.inParagraph = false
	r.align = AlignDefault
	r.current = nil
	return err
}

func (r *reconciler) visitText(node ElementDescriptor, path string, ctx StyleContext) error {
	var text string
	if v, ok := node.Props[PropText]; ok {
		s, ok := v.(string)
		if !ok {
			return newNodeError(InvalidStructure, path, node, "property %q must be a string, got %T", PropText, v)
		}
		text = s
	}

	ctx, err := ctx.withProps(node.Props)
	if err != nil {
		return newNodeError(InvalidStructure, path, node, "%v", err)
	}
	style := ResolveStyle(ctx)

	for i, segment := range r.splitSegments(text) {
		if i > 0 {
			r.ensureParagraph()
			r.openParagraph()
		}
		if segment == "" {
			continue
		}
		r.ensureParagraph()
		r.current.Runs = append(r.current.Runs, Run{Text: segment, Style: style, path: path, node: &node})
	}

	return r.visitChildren(node, path, ctx)
}

// splitSegments splits text on line-break markers. Each boundary becomes a paragraph break.
func (r *reconciler) splitSegments(text string) []string {
	if r.config.LiteralBreakMarkers {
		text = strings.ReplaceAll(text, `\n`, "\n")
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// ensureParagraph opens an implicit paragraph when text appears outside one
func (r *reconciler) ensureParagraph() {
	if r.current == nil {
		r.openParagraph()
	}
}

func (r *reconciler) openParagraph() {
	p := &ParagraphBlock{Alignment: r.align}
	r.model.Blocks = append(r.model.Blocks, p)
	r.current = p
}

func parseAlignment(props Props) (Alignment, error) {
	v, ok := props[PropAlign]
	if !ok {
		return AlignDefault, nil
	}
	s, ok := v.(string)
	if !ok {
		return AlignDefault, fmt.Errorf("property %q must be a string, got %T", PropAlign, v)
	}
	switch a := Alignment(strings.ToLower(s)); a {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return a, nil
	case "both":
		return AlignJustify, nil
	default:
		return AlignDefault, fmt.Errorf("property %q must be left, center, right or justify, got %q", PropAlign, s)
	}
}
