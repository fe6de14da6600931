package menu

import (
	"testing"

	"github.com/penmark/tableedit/dom"
	"github.com/penmark/tableedit/editor"
	"github.com/penmark/tableedit/model"
)

// fixture is an editor with a rows x cols table whose cell elements carry
// laid-out rects, plus a menu bound to it.
type fixture struct {
	doc      *dom.Document
	ed       *editor.Editor
	menu     *Menu
	tableKey model.NodeKey
}

func newFixture(t *testing.T, rows, cols int) *fixture {
	t.Helper()
	doc := dom.NewDocument()
	ed := editor.New(doc, editor.WithHighlightClass("selected"))

	var tableKey model.NodeKey
	err := ed.Update(func(txn *editor.Txn) error {
		table := txn.CreateTable()
		for r := 0; r < rows; r++ {
			row := txn.CreateTableRow()
			for c := 0; c < cols; c++ {
				cell := txn.CreateTableCell(model.HeaderNone)
				para := txn.CreateParagraph()
				if err := txn.Append(cell, para); err != nil {
					return err
				}
				if err := txn.Append(row, cell); err != nil {
					return err
				}
			}
			if err := txn.Append(table, row); err != nil {
				return err
			}
		}
		tableKey = table.Key()
		return txn.AppendToRoot(table)
	})
	if err != nil {
		t.Fatalf("building table: %v", err)
	}

	f := &fixture{doc: doc, ed: ed, tableKey: tableKey}
	f.layout(t, rows, cols)
	f.menu = New(ed)
	t.Cleanup(f.menu.Detach)
	return f
}

// layout assigns each cell element a rect on a fixed 100x40 grid.
func (f *fixture) layout(t *testing.T, rows, cols int) {
	t.Helper()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell, err := f.ed.CellAt(f.tableKey, r, c)
			if err != nil {
				t.Fatal(err)
			}
			el, err := f.ed.ElementByKey(cell.Key())
			if err != nil {
				t.Fatal(err)
			}
			el.SetRect(dom.NewRect(float64(c*100), float64(r*40), 100, 40))
		}
	}
}

// selectCell places a caret selection in the cell at (row, col).
func (f *fixture) selectCell(t *testing.T, row, col int) *model.TableCellNode {
	t.Helper()
	cell, err := f.ed.CellAt(f.tableKey, row, col)
	if err != nil {
		t.Fatal(err)
	}
	f.ed.SetSelection(editor.RangeSelection{AnchorKey: cell.Key(), FocusKey: cell.Key()})
	return cell
}

// selectGrid places a rectangular selection anchored at (anchorRow,
// anchorCol).
func (f *fixture) selectGrid(t *testing.T, anchorRow, anchorCol, fromRow, toRow, fromCol, toCol int) {
	t.Helper()
	anchor, err := f.ed.CellAt(f.tableKey, anchorRow, anchorCol)
	if err != nil {
		t.Fatal(err)
	}
	f.ed.SetSelection(editor.GridSelection{
		TableKey:      f.tableKey,
		AnchorCellKey: anchor.Key(),
		FromRow:       fromRow, ToRow: toRow,
		FromColumn: fromCol, ToColumn: toCol,
	})
}

func (f *fixture) shape(t *testing.T) []int {
	t.Helper()
	table, err := f.ed.NearestTable(f.tableKey)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]int, 0, table.RowCount())
	for _, rowKey := range table.ChildKeys() {
		row, err := f.ed.NearestRow(rowKey)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, row.CellCount())
	}
	return out
}

// ============================================================================
// State Machine Tests
// ============================================================================

func TestMenuClosedWithoutSelection(t *testing.T) {
	f := newFixture(t, 2, 2)
	if f.menu.IsOpen() {
		t.Error("menu open before any selection")
	}
	if f.menu.AnchorKey() != "" {
		t.Errorf("AnchorKey() = %q, want empty", f.menu.AnchorKey())
	}
	if f.menu.Open() {
		t.Error("Open() succeeded without a targeted cell")
	}
}

func TestMenuAnchorFollowsSelection(t *testing.T) {
	f := newFixture(t, 2, 2)

	cell := f.selectCell(t, 0, 0)
	if f.menu.AnchorKey() != cell.Key() {
		t.Errorf("AnchorKey() = %q, want %q", f.menu.AnchorKey(), cell.Key())
	}

	other := f.selectCell(t, 1, 1)
	if f.menu.AnchorKey() != other.Key() {
		t.Errorf("AnchorKey() after move = %q, want %q", f.menu.AnchorKey(), other.Key())
	}
}

func TestMenuToggle(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.selectCell(t, 0, 0)

	if !f.menu.Toggle() {
		t.Fatal("Toggle() failed to open")
	}
	if !f.menu.IsOpen() {
		t.Fatal("IsOpen() = false after Toggle")
	}
	if f.menu.Overlay() == nil {
		t.Fatal("Overlay() = nil while open")
	}
	if f.menu.Toggle() {
		t.Fatal("second Toggle() left the menu open")
	}
	if f.menu.Overlay() != nil {
		t.Error("Overlay() remains after close")
	}
}

func TestMenuPositionFromAnchorRect(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.selectCell(t, 1, 1)
	f.doc.ScrollLeft = 10
	f.doc.ScrollTop = 20

	if !f.menu.Open() {
		t.Fatal("Open() failed")
	}
	// Cell (1,1) occupies x 100..200, y 40..80. The overlay sits 5px right
	// of the cell's right edge, offset by the scroll position.
	pos := f.menu.Position()
	if pos.X != 200+5+10 {
		t.Errorf("Position().X = %v, want 215", pos.X)
	}
	if pos.Y != 40+20 {
		t.Errorf("Position().Y = %v, want 60", pos.Y)
	}
}

func TestMenuAnchorChangeForceCloses(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.selectCell(t, 0, 0)
	if !f.menu.Open() {
		t.Fatal("Open() failed")
	}

	f.selectCell(t, 1, 1)
	if f.menu.IsOpen() {
		t.Error("menu stayed open across an anchor change")
	}
}

func TestMenuDraftsResetOnClose(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.selectCell(t, 0, 0)
	f.menu.Open()
	f.menu.SetBackgroundDraft("red")
	f.menu.SetTopDraft(BorderDraft{Width: 2, Style: "solid", Color: "red"})
	f.menu.Close()

	if d := f.menu.Drafts(); d.Background != "" || !d.Top.IsZero() {
		t.Errorf("drafts survive close: %+v", d)
	}
}

// ============================================================================
// Outside Click Tests
// ============================================================================

func TestOutsideClickCloses(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.selectCell(t, 0, 0)
	f.menu.Open()

	before := f.doc.ListenerCount()
	if before == 0 {
		t.Fatal("no document listener registered while open")
	}

	f.doc.DispatchPointerDown(f.doc.Body(), 500, 500)
	if f.menu.IsOpen() {
		t.Fatal("menu open after outside pointer-down")
	}
	if got := f.doc.ListenerCount(); got != before-1 {
		t.Errorf("ListenerCount() = %d after close, want %d", got, before-1)
	}
}

func TestClickInsideOverlayStaysOpen(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.selectCell(t, 0, 0)
	f.menu.Open()

	f.doc.DispatchPointerDown(f.menu.Overlay(), 0, 0)
	if !f.menu.IsOpen() {
		t.Error("menu closed by a pointer-down inside the overlay")
	}
}

func TestClickOnButtonDoesNotCloseViaOutsideListener(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.selectCell(t, 0, 0)
	f.menu.Open()

	f.doc.DispatchPointerDown(f.menu.Button(), 0, 0)
	if !f.menu.IsOpen() {
		t.Error("trigger button pointer-down closed the menu")
	}
}

// ============================================================================
// Action Tests
// ============================================================================

func TestInsertRowsAboveUsesSnapshotCount(t *testing.T) {
	f := newFixture(t, 5, 2)
	// Rows 2..4 selected, anchored at row 3.
	f.selectGrid(t, 3, 0, 2, 4, 0, 0)
	if !f.menu.Open() {
		t.Fatal("Open() failed")
	}
	if got := f.menu.InsertRowCount(); got != 3 {
		t.Fatalf("InsertRowCount() = %d, want 3", got)
	}

	if err := f.menu.InsertRowsAbove(); err != nil {
		t.Fatalf("InsertRowsAbove() error: %v", err)
	}
	if got := f.shape(t); len(got) != 8 {
		t.Errorf("row count = %d, want 8", len(got))
	}
	if f.menu.IsOpen() {
		t.Error("menu open after action")
	}
}

func TestInsertRowsWithoutOpeningDefaultsToOne(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.selectCell(t, 0, 0)

	// Actions invoked off the open/close path still insert a single row.
	if err := f.menu.InsertRowsAbove(); err != nil {
		t.Fatalf("InsertRowsAbove() error: %v", err)
	}
	if got := f.shape(t); len(got) != 3 {
		t.Errorf("row count = %d, want 3", len(got))
	}
}

func TestInsertRowsBelowInsertsAfterSelection(t *testing.T) {
	f := newFixture(t, 5, 1)

	// Tag row 4's cell so we can find it after insertion.
	if err := f.ed.Update(func(txn *editor.Txn) error {
		cell, err := txn.CellAt(f.tableKey, 4, 0)
		if err != nil {
			return err
		}
		wc, err := editor.Writable(txn, cell)
		if err != nil {
			return err
		}
		return wc.SetBackgroundColor("sentinel")
	}); err != nil {
		t.Fatal(err)
	}

	f.selectGrid(t, 3, 0, 2, 4, 0, 0)
	f.menu.Open()
	if err := f.menu.InsertRowsBelow(); err != nil {
		t.Fatalf("InsertRowsBelow() error: %v", err)
	}

	// Three rows go in at index 5, pushing nothing: the sentinel row keeps
	// index 4 and the table grows to 8 rows.
	if got := f.shape(t); len(got) != 8 {
		t.Fatalf("row count = %d, want 8", len(got))
	}
	cell, err := f.ed.CellAt(f.tableKey, 4, 0)
	if err != nil {
		t.Fatal(err)
	}
	if cell.BackgroundColor() != "sentinel" {
		t.Error("rows inserted before the selection's last row")
	}
}

func TestInsertColumnsSnapshotCount(t *testing.T) {
	f := newFixture(t, 2, 4)
	// Columns 1..2 selected.
	f.selectGrid(t, 0, 1, 0, 0, 1, 2)
	f.menu.Open()
	if got := f.menu.InsertColumnCount(); got != 2 {
		t.Fatalf("InsertColumnCount() = %d, want 2", got)
	}
	if err := f.menu.InsertColumnsRight(); err != nil {
		t.Fatalf("InsertColumnsRight() error: %v", err)
	}
	for i, cells := range f.shape(t) {
		if cells != 6 {
			t.Errorf("row %d has %d cells, want 6", i, cells)
		}
	}
}

func TestDeleteRowAndColumn(t *testing.T) {
	f := newFixture(t, 3, 3)

	f.selectCell(t, 1, 1)
	f.menu.Open()
	if err := f.menu.DeleteRow(); err != nil {
		t.Fatalf("DeleteRow() error: %v", err)
	}
	if got := f.shape(t); len(got) != 2 {
		t.Fatalf("row count = %d, want 2", len(got))
	}

	f.selectCell(t, 0, 1)
	f.menu.Open()
	if err := f.menu.DeleteColumn(); err != nil {
		t.Fatalf("DeleteColumn() error: %v", err)
	}
	for i, cells := range f.shape(t) {
		if cells != 2 {
			t.Errorf("row %d has %d cells, want 2", i, cells)
		}
	}
}

func TestDeleteTableClearsAnchor(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.selectCell(t, 0, 0)
	f.menu.Open()

	if err := f.menu.DeleteTable(); err != nil {
		t.Fatalf("DeleteTable() error: %v", err)
	}
	if f.menu.IsOpen() {
		t.Error("menu open after table deletion")
	}
	if f.menu.AnchorKey() != "" {
		t.Errorf("AnchorKey() = %q after table deletion, want empty", f.menu.AnchorKey())
	}
	if _, err := f.ed.Latest(f.tableKey); err == nil {
		t.Error("table still committed after DeleteTable")
	}
}

func TestToggleRowHeaders(t *testing.T) {
	f := newFixture(t, 2, 3)
	f.selectCell(t, 0, 1)
	f.menu.Open()

	if err := f.menu.ToggleRowHeaders(); err != nil {
		t.Fatalf("ToggleRowHeaders() error: %v", err)
	}
	for c := 0; c < 3; c++ {
		cell, err := f.ed.CellAt(f.tableKey, 0, c)
		if err != nil {
			t.Fatal(err)
		}
		if !cell.HeaderState().Has(model.HeaderRow) {
			t.Errorf("row 0 cell %d missing row-header part", c)
		}
	}
	// The other row is untouched.
	cell, err := f.ed.CellAt(f.tableKey, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if cell.HeaderState() != model.HeaderNone {
		t.Errorf("row 1 cell state = %v, want HeaderNone", cell.HeaderState())
	}

	// Toggling again restores the original state.
	f.selectCell(t, 0, 1)
	f.menu.Open()
	if err := f.menu.ToggleRowHeaders(); err != nil {
		t.Fatal(err)
	}
	cell, err = f.ed.CellAt(f.tableKey, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if cell.HeaderState() != model.HeaderNone {
		t.Errorf("double toggle state = %v, want HeaderNone", cell.HeaderState())
	}
}

func TestToggleColumnHeaders(t *testing.T) {
	f := newFixture(t, 3, 2)
	f.selectCell(t, 1, 1)
	f.menu.Open()

	if err := f.menu.ToggleColumnHeaders(); err != nil {
		t.Fatalf("ToggleColumnHeaders() error: %v", err)
	}
	for r := 0; r < 3; r++ {
		cell, err := f.ed.CellAt(f.tableKey, r, 1)
		if err != nil {
			t.Fatal(err)
		}
		if !cell.HeaderState().Has(model.HeaderColumn) {
			t.Errorf("column 1 cell in row %d missing column-header part", r)
		}
	}
}

func TestToggleColumnHeadersRaggedRowFails(t *testing.T) {
	f := newFixture(t, 2, 2)

	// Shrink row 1 to one cell so column 1 is missing there.
	if err := f.ed.Update(func(txn *editor.Txn) error {
		table, err := txn.NearestTable(f.tableKey)
		if err != nil {
			return err
		}
		row, err := txn.NearestRow(table.ChildKeys()[1])
		if err != nil {
			return err
		}
		return txn.Destroy(row.ChildKeys()[1])
	}); err != nil {
		t.Fatal(err)
	}

	f.layout(t, 1, 2)
	f.selectCell(t, 0, 1)
	f.menu.Open()

	err := f.menu.ToggleColumnHeaders()
	if !editor.IsOutOfBounds(err) {
		t.Fatalf("ToggleColumnHeaders() on ragged table = %v, want OutOfBoundsErr", err)
	}
	// Nothing mutated.
	cell, cerr := f.ed.CellAt(f.tableKey, 0, 1)
	if cerr != nil {
		t.Fatal(cerr)
	}
	if cell.HeaderState() != model.HeaderNone {
		t.Errorf("cell state = %v after aborted toggle, want HeaderNone", cell.HeaderState())
	}
}

func TestActionClearsGridHighlight(t *testing.T) {
	f := newFixture(t, 3, 3)
	f.selectGrid(t, 0, 0, 0, 1, 0, 1)
	f.menu.Open()

	if err := f.menu.InsertRowsBelow(); err != nil {
		t.Fatal(err)
	}
	if _, ok := f.ed.Selection().(editor.RangeSelection); !ok {
		t.Errorf("selection after action = %T, want RangeSelection", f.ed.Selection())
	}
}

// ============================================================================
// Style Tests
// ============================================================================

func TestApplyCellStyle(t *testing.T) {
	f := newFixture(t, 2, 2)
	cell := f.selectCell(t, 0, 0)
	f.menu.Open()

	f.menu.SetBackgroundDraft("#abcdef")
	f.menu.SetTopDraft(BorderDraft{Width: 2, Style: "solid", Color: "red"})
	if err := f.menu.ApplyCellStyle(); err != nil {
		t.Fatalf("ApplyCellStyle() error: %v", err)
	}

	got, err := f.ed.NearestCell(cell.Key())
	if err != nil {
		t.Fatal(err)
	}
	if got.BackgroundColor() != "#abcdef" {
		t.Errorf("BackgroundColor() = %q, want %q", got.BackgroundColor(), "#abcdef")
	}
	if got.BorderEdge(model.EdgeTop) != "2px solid red" {
		t.Errorf("BorderEdge(top) = %q, want %q", got.BorderEdge(model.EdgeTop), "2px solid red")
	}
	// Edges with empty drafts stay untouched.
	if got.BorderEdge(model.EdgeBottom) != "" {
		t.Errorf("BorderEdge(bottom) = %q, want unset", got.BorderEdge(model.EdgeBottom))
	}

	// The styled top edge shows up in the live projection with rounded
	// corners.
	el, err := f.ed.ElementByKey(cell.Key())
	if err != nil {
		t.Fatal(err)
	}
	if el.Style("border-top") != "2px solid red" {
		t.Errorf("rendered border-top = %q, want %q", el.Style("border-top"), "2px solid red")
	}
	if el.Style("border-radius") != "3px" {
		t.Errorf("rendered border-radius = %q, want %q", el.Style("border-radius"), "3px")
	}
}

func TestApplyCellStyleInvalidColor(t *testing.T) {
	f := newFixture(t, 2, 2)
	cell := f.selectCell(t, 0, 0)
	f.menu.Open()

	f.menu.SetBackgroundDraft("notacolor")
	if err := f.menu.ApplyCellStyle(); err == nil {
		t.Fatal("ApplyCellStyle() accepted an invalid color")
	}

	got, err := f.ed.NearestCell(cell.Key())
	if err != nil {
		t.Fatal(err)
	}
	if got.BackgroundColor() != "" {
		t.Errorf("BackgroundColor() = %q after rejected style, want unset", got.BackgroundColor())
	}
}

func TestApplyCellStyleSurvivesRerender(t *testing.T) {
	f := newFixture(t, 2, 2)
	cell := f.selectCell(t, 0, 0)
	f.menu.Open()
	f.menu.SetLeftDraft(BorderDraft{Width: 1, Style: "dashed", Color: "blue"})
	if err := f.menu.ApplyCellStyle(); err != nil {
		t.Fatal(err)
	}

	// An unrelated commit rebuilds the projection; the styling persists
	// because it lives on the cell snapshot.
	if err := f.ed.Update(func(txn *editor.Txn) error {
		return txn.InsertRows(f.tableKey, 0, 1)
	}); err != nil {
		t.Fatal(err)
	}
	el, err := f.ed.ElementByKey(cell.Key())
	if err != nil {
		t.Fatal(err)
	}
	if el.Style("border-left") != "1px dashed blue" {
		t.Errorf("border-left after re-render = %q, want %q", el.Style("border-left"), "1px dashed blue")
	}
}

// ============================================================================
// Draft Tests
// ============================================================================

func TestBorderDraftCompose(t *testing.T) {
	tests := []struct {
		name  string
		draft BorderDraft
		want  string
	}{
		{"full", BorderDraft{Width: 2, Style: "solid", Color: "red"}, "2px solid red"},
		{"no width", BorderDraft{Style: "dotted", Color: "#333"}, "dotted #333"},
		{"width only", BorderDraft{Width: 1.5}, "1.5px"},
		{"zero", BorderDraft{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.draft.compose(); got != tt.want {
				t.Errorf("compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ============================================================================
// Detach Tests
// ============================================================================

func TestDetachUnregistersEverything(t *testing.T) {
	f := newFixture(t, 2, 2)
	f.selectCell(t, 0, 0)
	f.menu.Open()

	f.menu.Detach()
	if f.menu.IsOpen() {
		t.Error("menu open after Detach")
	}
	if f.doc.ListenerCount() != 0 {
		t.Errorf("ListenerCount() = %d after Detach, want 0", f.doc.ListenerCount())
	}
	if f.menu.Button().Parent() != nil {
		t.Error("trigger button still mounted after Detach")
	}
}
