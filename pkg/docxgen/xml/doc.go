// Package xml provides the XML structures written into a WordprocessingML package.
//
// The structures here are write-only: every type marshals itself with the conventional
// namespace prefixes (w:, r:, cp:, dc:, ...) so the output matches what word processors
// produce, and nothing in this package parses existing documents.
//
// # Structure Organization
//
//   - types.go: Core interfaces (BodyElement, ParagraphContent), namespaces and value elements
//   - document.go: Document, Body, SectionProperties and the Marshal helper
//   - paragraph.go: Paragraph and ParagraphProperties
//   - run.go: Run, RunProperties, Text and Break
//   - parts.go: Package-level parts (relationships, content types, core/app properties, styles)
//
// # Key Concepts
//
// BodyElement: Top-level elements that can appear in a document body. Only paragraphs are
// produced today; tables and other blocks plug in by implementing the interface.
//
// ParagraphContent: Elements that can appear within a paragraph. Only runs are produced today.
//
// Run: A contiguous sequence of text with consistent formatting.
//
// Example of building and marshaling a body:
//
//	doc := &xml.Document{
//	    Body: &xml.Body{
//	        Elements: []xml.BodyElement{
//	            &xml.Paragraph{
//	                Content: []xml.ParagraphContent{
//	                    &xml.Run{Text: xml.NewText("Hello, world!")},
//	                },
//	            },
//	        },
//	    },
//	}
//	data, err := xml.Marshal(doc)
//
// # Escaping
//
// Character data and attribute values go through encoding/xml, which escapes the reserved
// characters and writes tab and carriage return as character references. Characters that
// XML 1.0 cannot represent at all are replaced with U+FFFD.
package xml
