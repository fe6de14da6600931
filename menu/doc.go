// Package menu implements the table action menu: a transient overlay
// anchored to the selected cell, exposing row and column insertion and
// deletion, header toggles, table deletion, and a cell styling form.
//
// The menu tracks the editor passively. An update listener re-resolves
// the anchor cell after every commit, a mutation listener force-closes
// the overlay when the anchor is destroyed, and a document-scope pointer
// listener dismisses the overlay on any pointer-down outside the panel.
// Every action ends the same way regardless of outcome: the grid
// highlight is cleared and the overlay closes.
package menu
