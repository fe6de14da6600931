package markup

import (
	"io"
	"strings"
	"testing"

	"github.com/penmark/tableedit/dom"
	"github.com/penmark/tableedit/editor"
	"github.com/penmark/tableedit/model"
)

// importTable parses markup and commits the resulting table, returning the
// editor and the table's key.
func importTable(t *testing.T, markup string) (*editor.Editor, model.NodeKey) {
	t.Helper()
	ed := editor.New(dom.NewDocument())
	var tableKey model.NodeKey
	err := ed.Update(func(txn *editor.Txn) error {
		table, err := ImportTableMarkup(txn, strings.NewReader(markup))
		if err != nil {
			return err
		}
		tableKey = table.Key()
		return txn.AppendToRoot(table)
	})
	if err != nil {
		t.Fatalf("importing table: %v", err)
	}
	return ed, tableKey
}

// ============================================================================
// Import Tests
// ============================================================================

func TestImportTableShape(t *testing.T) {
	ed, tableKey := importTable(t, `
		<table>
			<tr><th>A</th><th>B</th></tr>
			<tr><td>1</td><td>2</td></tr>
			<tr><td>3</td><td>4</td></tr>
		</table>`)

	table, err := ed.NearestTable(tableKey)
	if err != nil {
		t.Fatal(err)
	}
	if table.RowCount() != 3 {
		t.Errorf("RowCount() = %d, want 3", table.RowCount())
	}
	for i, rowKey := range table.ChildKeys() {
		row, err := ed.NearestRow(rowKey)
		if err != nil {
			t.Fatal(err)
		}
		if row.CellCount() != 2 {
			t.Errorf("row %d CellCount() = %d, want 2", i, row.CellCount())
		}
	}
}

func TestImportHeaderState(t *testing.T) {
	ed, tableKey := importTable(t, `
		<table>
			<tr><th>H</th><td>D</td></tr>
		</table>`)

	th, err := ed.CellAt(tableKey, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !th.HeaderState().Has(model.HeaderRow) {
		t.Errorf("th cell HeaderState() = %v, want row header", th.HeaderState())
	}
	td, err := ed.CellAt(tableKey, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if td.HeaderState() != model.HeaderNone {
		t.Errorf("td cell HeaderState() = %v, want HeaderNone", td.HeaderState())
	}
}

func TestImportLoneNewlineBreakDropped(t *testing.T) {
	ed, tableKey := importTable(t, "<table><tr><th><br>\n</th><td>x</td></tr></table>")

	th, err := ed.CellAt(tableKey, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !th.HeaderState().Has(model.HeaderRow) {
		t.Error("lone-break th lost its header state")
	}
	if got := len(th.ChildKeys()); got != 0 {
		t.Errorf("lone-break cell has %d children, want 0", got)
	}

	// A break alongside real text is kept.
	td, err := ed.CellAt(tableKey, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(td.ChildKeys()); got != 1 {
		t.Errorf("text cell has %d children, want 1 paragraph", got)
	}
}

func TestImportInlineContentWrapped(t *testing.T) {
	ed, tableKey := importTable(t, "<table><tr><td>hello<br>world</td></tr></table>")

	cell, err := ed.CellAt(tableKey, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(cell.ChildKeys()); got != 1 {
		t.Fatalf("cell has %d children, want 1 wrapping paragraph", got)
	}
	para, err := ed.Latest(cell.ChildKeys()[0])
	if err != nil {
		t.Fatal(err)
	}
	pn, ok := para.(*model.ParagraphNode)
	if !ok {
		t.Fatalf("child is %T, want paragraph", para)
	}
	kinds := make([]model.NodeKind, 0, 3)
	for _, k := range pn.ChildKeys() {
		n, err := ed.Latest(k)
		if err != nil {
			t.Fatal(err)
		}
		kinds = append(kinds, n.Kind())
	}
	want := []model.NodeKind{model.KindText, model.KindLineBreak, model.KindText}
	if len(kinds) != len(want) {
		t.Fatalf("paragraph children kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("child %d kind = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestImportBlockContent(t *testing.T) {
	ed, tableKey := importTable(t, "<table><tr><td><p>one</p><p>two</p></td></tr></table>")

	cell, err := ed.CellAt(tableKey, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(cell.ChildKeys()); got != 2 {
		t.Errorf("cell has %d children, want 2 paragraphs", got)
	}
}

func TestImportCellAttrs(t *testing.T) {
	ed, tableKey := importTable(t,
		`<table><tr><td colspan="3" style="background-color: #ff0000; width: 120px; border: 1px solid black">x</td></tr></table>`)

	cell, err := ed.CellAt(tableKey, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := cell.ColSpan(); got != 3 {
		t.Errorf("ColSpan() = %d, want 3", got)
	}
	if got := cell.BackgroundColor(); got != "#ff0000" {
		t.Errorf("BackgroundColor() = %q, want %q", got, "#ff0000")
	}
	w, ok := cell.Width()
	if !ok || w != 120 {
		t.Errorf("Width() = %v, %v, want 120, true", w, ok)
	}
	if got := cell.BorderStyle(); got != "1px solid black" {
		t.Errorf("BorderStyle() = %q, want %q", got, "1px solid black")
	}
}

func TestImportNoTable(t *testing.T) {
	ed := editor.New(dom.NewDocument())
	err := ed.Update(func(txn *editor.Txn) error {
		_, err := ImportTableMarkup(txn, strings.NewReader("<p>no table here</p>"))
		return err
	})
	if err == nil {
		t.Fatal("ImportTableMarkup() succeeded without a table element")
	}
}

// ============================================================================
// Reader Normalization Tests
// ============================================================================

func TestReaderNormalization(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"nbsp becomes space", "a\u00a0b", "a b"},
		{"zero width space removed", "a\u200bb", "ab"},
		{"zero width joiner removed", "a\u200db", "ab"},
		{"bom removed", "\ufeffhello", "hello"},
		{"plain text untouched", "hello world", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewReader(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("NewReader() error: %v", err)
			}
			out, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("reading: %v", err)
			}
			if string(out) != tt.want {
				t.Errorf("normalized = %q, want %q", out, tt.want)
			}
		})
	}
}

// ============================================================================
// Export Tests
// ============================================================================

func TestExportTableMarkup(t *testing.T) {
	ed, tableKey := importTable(t, `
		<table>
			<tr><th>A</th><th>B</th></tr>
			<tr><td>1</td><td>2</td></tr>
		</table>`)

	out, err := ExportTable(ed, tableKey, DefaultWidthBudget)
	if err != nil {
		t.Fatal(err)
	}

	checks := []string{
		"<table",
		"border-collapse: collapse",
		"<th",
		"<td",
		"border: 1px solid black",
		"width: 370px",
		"background-color: #f2f3f5",
		">1<",
	}
	for _, want := range checks {
		if !strings.Contains(out, want) {
			t.Errorf("exported markup missing %q:\n%s", want, out)
		}
	}
}

func TestExportCellExplicitWidth(t *testing.T) {
	ed, tableKey := importTable(t,
		`<table><tr><td style="width: 200px">x</td><td>y</td></tr></table>`)

	cell, err := ed.CellAt(tableKey, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ExportCell(ed, cell.Key(), DefaultWidthBudget, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "width: 200px") {
		t.Errorf("exported cell missing explicit width:\n%s", out)
	}
}

func TestExportMinimumWidth(t *testing.T) {
	// Ten columns over a 300px budget floor at 90px per column.
	var sb strings.Builder
	sb.WriteString("<table><tr>")
	for i := 0; i < 10; i++ {
		sb.WriteString("<td>x</td>")
	}
	sb.WriteString("</tr></table>")

	ed, tableKey := importTable(t, sb.String())
	cell, err := ed.CellAt(tableKey, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	out, err := ExportCell(ed, cell.Key(), 300, 10)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "width: 90px") {
		t.Errorf("exported cell missing minimum width:\n%s", out)
	}
}

func TestExportRoundTripShape(t *testing.T) {
	src := `<table><tr><th>H1</th><th>H2</th></tr><tr><td>a</td><td>b</td></tr></table>`
	ed, tableKey := importTable(t, src)

	out, err := ExportTable(ed, tableKey, DefaultWidthBudget)
	if err != nil {
		t.Fatal(err)
	}

	// Re-import the exported markup: shape and header state must survive.
	ed2, tableKey2 := importTable(t, out)
	table, err := ed2.NearestTable(tableKey2)
	if err != nil {
		t.Fatal(err)
	}
	if table.RowCount() != 2 {
		t.Errorf("round-trip RowCount() = %d, want 2", table.RowCount())
	}
	th, err := ed2.CellAt(tableKey2, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !th.HasHeader() {
		t.Error("round-trip lost header state")
	}
}
