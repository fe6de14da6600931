// Package dom provides the lightweight element projection that document
// nodes render into.
//
// The host editor owns the real display surface; this package models the
// parts the table-editing feature needs: an element tree with tags,
// attributes, class lists, and ordered inline style declarations; layout
// bounding boxes and document scroll offsets for overlay positioning; and
// pointer-down event dispatch with element and document scope listeners,
// used for outside-click dismissal.
//
// Elements are plain mutable values. Consistency with the document model is
// maintained by the editor package, which re-renders an element whenever
// its node commits a mutation.
package dom
