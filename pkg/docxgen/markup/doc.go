// Package markup builds docxgen element trees from Markdown, HTML and plain text.
//
// The converters only produce descriptors; rendering stays with the docxgen engine:
//
//	tree, err := markup.Convert("markdown", src)
//	if err != nil {
//		return err
//	}
//	err = docxgen.Render(ctx, tree, "out.docx")
//
// Only the formatting the element set can express survives conversion. Tables,
// images and raw HTML blocks are dropped, links keep their text with hyperlink
// styling, and list items are prefixed with a bullet or their number.
package markup
