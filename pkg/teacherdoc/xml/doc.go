// Package xml provides a lossless XML node tree for the parts of DOCX and ODT
// packages.
//
// Office documents are ZIP archives whose main content lives in XML parts
// (word/document.xml for DOCX, content.xml for ODT). Templates routinely carry
// elements this module never interprets (bookmarks, proofing marks, drawing
// extensions, revision ids), so instead of decoding into typed structs the
// parts are read into a generic tree that keeps every element, attribute,
// namespace prefix, comment and processing instruction in document order.
//
// # Structure Organization
//
//   - node.go: Node, Name and Attr types plus tree navigation and mutation
//   - parse.go: Parse and ParseFragment built on encoding/xml RawToken
//   - write.go: serialisation back to bytes
//
// # Prefixes
//
// Names are kept with their literal prefix ("w:p", "table:table-cell"); the
// tree never rewrites prefixes into namespace URIs. Callers that need to be
// robust against unusual prefixes can resolve them with LookupPrefix:
//
//	root := doc.DocumentElement()
//	w, ok := root.LookupPrefix("http://schemas.openxmlformats.org/wordprocessingml/2006/main")
//	if !ok {
//	    w = "w"
//	}
//	paragraphs := root.Descendants(w, "p")
package xml
