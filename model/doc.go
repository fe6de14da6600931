// Package model defines the document nodes the table-editing feature
// operates on.
//
// # Nodes and snapshots
//
// Every node carries a stable [NodeKey] and a closed [NodeKind] tag.
// Committed snapshots are immutable: mutating accessors return
// [ErrReadOnly] unless called on a writable clone obtained through an
// editor transaction. Cloning preserves the key, so identity is continuous
// across mutations (copy-on-write).
//
// # Table cells
//
// [TableCellNode] is the central type: it stores header classification
// ([HeaderState], a set over row/column parts), column span, an optional
// pixel width, and background/border styling, including per-edge border
// overrides. It renders to a live element via Render and to theme-free
// export markup via ExportElement.
//
// Container nodes ([TableNode], [TableRowNode], [ParagraphNode],
// [RootNode]) hold ordered child keys; the editor registry resolves keys
// to the latest snapshots.
package model
