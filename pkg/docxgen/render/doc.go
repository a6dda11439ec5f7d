// Package render provides pure post-processing helpers for serialized paragraphs.
//
// The helpers operate on the xml package types only and never call back into the
// docxgen package, so they can be tested independently and reused by other writers.
//
// MergeConsecutiveRuns combines adjacent text runs that carry identical formatting.
// A tree such as Text("Hello ") followed by Text("world") reconciles into two runs;
// merging them yields the single run a word processor would have written.
//
//	para := &xml.Paragraph{
//	    Content: []xml.ParagraphContent{
//	        &xml.Run{Text: xml.NewText("Hello ")},
//	        &xml.Run{Text: xml.NewText("world")},
//	    },
//	}
//	render.MergeConsecutiveRuns(para)
//	// Result: single run containing "Hello world"
package render
