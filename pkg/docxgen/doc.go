// Package docxgen renders declarative document trees into Microsoft Word (DOCX) files.
//
// A document is described as plain data: a tree of ElementDescriptor values built with
// the constructors in this package. Rendering runs four stages, each owned by a single
// call: the reconciler turns the tree into a DocumentModel, the serializer turns the
// model into WordprocessingML parts, the package writer zips the parts into an OPC
// archive, and the archive is published to its destination.
//
// Basic Usage:
//
//	tree := docxgen.Document(
//	    docxgen.Paragraph(
//	        docxgen.Text("Hello, "),
//	        docxgen.Bold(docxgen.Text("world")),
//	    ),
//	    docxgen.Text("Second paragraph\nThird paragraph"),
//	)
//
//	if err := docxgen.Render(context.Background(), tree, "hello.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
// Element Kinds:
//
// Document is the root. Paragraph groups runs and accepts an align property. Text carries
// its string in the "text" property; line breaks inside it, and the two characters \n
// unless Config.LiteralBreakMarkers is false, start new paragraphs. Break
// inserts a line break within the current paragraph. Bold, Italic, Underline, Strike,
// Superscript and Subscript format everything below them. Text outside a Paragraph is
// placed in an implicit one.
//
// Formatting can also be given as properties (bold, italic, underline, strike,
// superscript, subscript, color, size) on any element:
//
//	docxgen.Text("Warning").WithProps(docxgen.Props{"color": "C00000", "size": 14})
//
// Output:
//
// Rendering is deterministic: the same tree and configuration always produce the same
// bytes. The archive carries no timestamps unless Config.Created or Config.Modified is
// set. Render replaces the destination atomically; on failure the previous file, if
// any, is left untouched.
//
// Errors:
//
// Every failure is an *Error carrying an ErrorKind. Use errors.Is with the sentinel
// values (ErrUnsupportedElementKind, ErrInvalidStructure, ...) or IsKind to classify.
// Errors tied to a tree node carry its path, such as "Document/Paragraph[0]/Text[2]".
package docxgen
