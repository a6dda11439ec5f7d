package render

import (
	"reflect"

	"github.com/benjaminschreck/go-docxgen/pkg/docxgen/xml"
)

// runPropertiesEquivalent checks if two run properties are equivalent for merging purposes
func runPropertiesEquivalent(p1, p2 *xml.RunProperties) bool {
	empty1 := p1 == nil || p1.IsEmpty()
	empty2 := p2 == nil || p2.IsEmpty()
	if empty1 || empty2 {
		return empty1 == empty2
	}
	return reflect.DeepEqual(p1, p2)
}

// mergeable reports whether a run is plain text that may absorb or be absorbed by a neighbour
func mergeable(run *xml.Run) bool {
	return run != nil && run.Text != nil && run.Break == nil
}

// MergeConsecutiveRuns merges consecutive text runs with equivalent formatting.
// Break runs and non-run content split the sequence. It returns the number of runs removed.
func MergeConsecutiveRuns(para *xml.Paragraph) int {
	if para == nil || len(para.Content) <= 1 {
		return 0
	}

	merged := make([]xml.ParagraphContent, 0, len(para.Content))
	var current *xml.Run
	removed := 0

	for _, content := range para.Content {
		run, ok := content.(*xml.Run)
		if !ok || !mergeable(run) {
			merged = append(merged, content)
			current = nil
			continue
		}

		if current != nil && runPropertiesEquivalent(current.Properties, run.Properties) {
			current.Text = xml.NewText(current.Text.Content + run.Text.Content)
			removed++
			continue
		}

		// Copy so the caller's run is not modified by later merges
		cp := *run
		current = &cp
		merged = append(merged, current)
	}

	para.Content = merged
	return removed
}

// MergeBody applies MergeConsecutiveRuns to every paragraph in a body
func MergeBody(body *xml.Body) int {
	if body == nil {
		return 0
	}
	removed := 0
	for _, elem := range body.Elements {
		if para, ok := elem.(*xml.Paragraph); ok {
			removed += MergeConsecutiveRuns(para)
		}
	}
	return removed
}
