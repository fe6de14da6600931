// Package markup converts between HTML markup and table nodes.
//
// Import parses <table>/<tr>/<td>/<th> markup into detached nodes inside
// a transaction: header state derives from the tag name, inline content
// is wrapped in paragraphs, and a lone <br> whose text is exactly one
// newline is dropped. Input passes through charset detection and
// normalization (non-breaking spaces, zero-width characters).
//
// Export serializes committed tables to stand-alone styled markup with a
// fixed 1px black border and computed column widths, independent of the
// live theme.
package markup
