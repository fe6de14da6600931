package editor

import "github.com/penmark/tableedit/model"

// resolver abstracts snapshot lookup so ancestor and index computations
// work both on committed state (Editor) and inside a transaction (Txn).
type resolver interface {
	Latest(key model.NodeKey) (model.Node, error)
}

func nearestOfKind(r resolver, key model.NodeKey, kind model.NodeKind) (model.Node, error) {
	for key != "" {
		n, err := r.Latest(key)
		if err != nil {
			return nil, err
		}
		if n.Kind() == kind {
			return n, nil
		}
		key = n.ParentKey()
	}
	return nil, detachedNodeError("no %s ancestor found", kind)
}

func resolveCell(r resolver, key model.NodeKey) (*model.TableCellNode, error) {
	n, err := r.Latest(key)
	if err != nil {
		return nil, err
	}
	cell, ok := n.(*model.TableCellNode)
	if !ok {
		return nil, wrongKindError(model.KindTableCell.String(), n.Kind().String())
	}
	return cell, nil
}

func resolveRow(r resolver, key model.NodeKey) (*model.TableRowNode, error) {
	n, err := r.Latest(key)
	if err != nil {
		return nil, err
	}
	row, ok := n.(*model.TableRowNode)
	if !ok {
		return nil, wrongKindError(model.KindTableRow.String(), n.Kind().String())
	}
	return row, nil
}

func resolveTable(r resolver, key model.NodeKey) (*model.TableNode, error) {
	n, err := r.Latest(key)
	if err != nil {
		return nil, err
	}
	table, ok := n.(*model.TableNode)
	if !ok {
		return nil, wrongKindError(model.KindTable.String(), n.Kind().String())
	}
	return table, nil
}

func nearestCell(r resolver, key model.NodeKey) (*model.TableCellNode, error) {
	n, err := nearestOfKind(r, key, model.KindTableCell)
	if err != nil {
		return nil, err
	}
	return n.(*model.TableCellNode), nil
}

func nearestRow(r resolver, key model.NodeKey) (*model.TableRowNode, error) {
	n, err := nearestOfKind(r, key, model.KindTableRow)
	if err != nil {
		return nil, err
	}
	return n.(*model.TableRowNode), nil
}

func nearestTable(r resolver, key model.NodeKey) (*model.TableNode, error) {
	n, err := nearestOfKind(r, key, model.KindTable)
	if err != nil {
		return nil, err
	}
	return n.(*model.TableNode), nil
}

func rowIndex(r resolver, cellKey model.NodeKey) (int, error) {
	row, err := nearestRow(r, cellKey)
	if err != nil {
		return 0, err
	}
	table, err := nearestTable(r, row.Key())
	if err != nil {
		return 0, err
	}
	for i, k := range table.ChildKeys() {
		if k == row.Key() {
			return i, nil
		}
	}
	return 0, outOfBoundsError("row %q not found in table %q", row.Key(), table.Key())
}

func columnIndex(r resolver, cellKey model.NodeKey) (int, error) {
	cell, err := nearestCell(r, cellKey)
	if err != nil {
		return 0, err
	}
	row, err := nearestRow(r, cell.Key())
	if err != nil {
		return 0, err
	}
	for i, k := range row.ChildKeys() {
		if k == cell.Key() {
			return i, nil
		}
	}
	return 0, outOfBoundsError("cell %q not found in row %q", cell.Key(), row.Key())
}

func cellAt(r resolver, tableKey model.NodeKey, rowIdx, colIdx int) (*model.TableCellNode, error) {
	table, err := resolveTable(r, tableKey)
	if err != nil {
		return nil, err
	}
	rows := table.ChildKeys()
	if rowIdx < 0 || rowIdx >= len(rows) {
		return nil, outOfBoundsError("row index %d out of bounds (%d rows)", rowIdx, len(rows))
	}
	row, err := resolveRow(r, rows[rowIdx])
	if err != nil {
		return nil, err
	}
	cells := row.ChildKeys()
	if colIdx < 0 || colIdx >= len(cells) {
		return nil, outOfBoundsError("column index %d out of bounds for row %d (%d cells)", colIdx, rowIdx, len(cells))
	}
	return resolveCell(r, cells[colIdx])
}

// NearestCell resolves the nearest table-cell ancestor (inclusive) of key
// in committed state.
func (ed *Editor) NearestCell(key model.NodeKey) (*model.TableCellNode, error) {
	return nearestCell(ed, key)
}

// NearestRow resolves the nearest table-row ancestor (inclusive) of key.
func (ed *Editor) NearestRow(key model.NodeKey) (*model.TableRowNode, error) {
	return nearestRow(ed, key)
}

// NearestTable resolves the nearest table ancestor (inclusive) of key.
func (ed *Editor) NearestTable(key model.NodeKey) (*model.TableNode, error) {
	return nearestTable(ed, key)
}

// RowIndex returns the index of the row containing the given cell within
// its table.
func (ed *Editor) RowIndex(cellKey model.NodeKey) (int, error) {
	return rowIndex(ed, cellKey)
}

// ColumnIndex returns the index of the given cell within its row.
func (ed *Editor) ColumnIndex(cellKey model.NodeKey) (int, error) {
	return columnIndex(ed, cellKey)
}

// CellAt returns the cell at (rowIdx, colIdx) in the given table.
func (ed *Editor) CellAt(tableKey model.NodeKey, rowIdx, colIdx int) (*model.TableCellNode, error) {
	return cellAt(ed, tableKey, rowIdx, colIdx)
}

// NearestCell resolves the nearest table-cell ancestor (inclusive) of key
// inside the transaction.
func (t *Txn) NearestCell(key model.NodeKey) (*model.TableCellNode, error) {
	return nearestCell(t, key)
}

// NearestRow resolves the nearest table-row ancestor (inclusive) of key.
func (t *Txn) NearestRow(key model.NodeKey) (*model.TableRowNode, error) {
	return nearestRow(t, key)
}

// NearestTable resolves the nearest table ancestor (inclusive) of key.
func (t *Txn) NearestTable(key model.NodeKey) (*model.TableNode, error) {
	return nearestTable(t, key)
}

// RowIndex returns the index of the row containing the given cell within
// its table.
func (t *Txn) RowIndex(cellKey model.NodeKey) (int, error) {
	return rowIndex(t, cellKey)
}

// ColumnIndex returns the index of the given cell within its row.
func (t *Txn) ColumnIndex(cellKey model.NodeKey) (int, error) {
	return columnIndex(t, cellKey)
}

// CellAt returns the cell at (rowIdx, colIdx) in the given table.
func (t *Txn) CellAt(tableKey model.NodeKey, rowIdx, colIdx int) (*model.TableCellNode, error) {
	return cellAt(t, tableKey, rowIdx, colIdx)
}

// newCellWithParagraph creates a cell holding an empty paragraph. Cells
// can never be empty.
func (t *Txn) newCellWithParagraph(state model.HeaderState) (*model.TableCellNode, error) {
	cell := t.CreateTableCell(state)
	para := t.CreateParagraph()
	if err := t.Append(cell, para); err != nil {
		return nil, err
	}
	return cell, nil
}

// InsertRows inserts count rows at the given index. New cells inherit the
// column-header bit from the adjacent reference row so header columns stay
// contiguous.
func (t *Txn) InsertRows(tableKey model.NodeKey, index, count int) error {
	if count < 1 {
		return outOfBoundsError("insert count must be positive, got %d", count)
	}
	table, err := resolveTable(t, tableKey)
	if err != nil {
		return err
	}
	rows := table.ChildKeys()
	if index < 0 || index > len(rows) {
		return outOfBoundsError("row index %d out of bounds (%d rows)", index, len(rows))
	}
	if len(rows) == 0 {
		return outOfBoundsError("cannot insert into a table with no rows")
	}

	refIdx := index
	if refIdx >= len(rows) {
		refIdx = len(rows) - 1
	}
	ref, err := resolveRow(t, rows[refIdx])
	if err != nil {
		return err
	}
	refCells := ref.ChildKeys()

	newKeys := make([]model.NodeKey, 0, count)
	for i := 0; i < count; i++ {
		row := t.CreateTableRow()
		for _, refCellKey := range refCells {
			refCell, err := resolveCell(t, refCellKey)
			if err != nil {
				return err
			}
			state := model.HeaderNone
			if refCell.HeaderState().Has(model.HeaderColumn) {
				state = model.HeaderColumn
			}
			cell, err := t.newCellWithParagraph(state)
			if err != nil {
				return err
			}
			if err := t.Append(row, cell); err != nil {
				return err
			}
		}
		newKeys = append(newKeys, row.Key())
	}

	wt, err := Writable(t, table)
	if err != nil {
		return err
	}
	for _, k := range newKeys {
		rowNode, err := t.Latest(k)
		if err != nil {
			return err
		}
		w, err := t.writable(rowNode)
		if err != nil {
			return err
		}
		if err := w.SetParentKey(table.Key()); err != nil {
			return err
		}
	}
	spliced := make([]model.NodeKey, 0, len(rows)+count)
	spliced = append(spliced, rows[:index]...)
	spliced = append(spliced, newKeys...)
	spliced = append(spliced, rows[index:]...)
	return wt.SetChildKeys(spliced)
}

// RemoveRow removes the row at the given index, destroying its cells.
func (t *Txn) RemoveRow(tableKey model.NodeKey, index int) error {
	table, err := resolveTable(t, tableKey)
	if err != nil {
		return err
	}
	rows := table.ChildKeys()
	if index < 0 || index >= len(rows) {
		return outOfBoundsError("row index %d out of bounds (%d rows)", index, len(rows))
	}
	return t.Destroy(rows[index])
}

// InsertColumns inserts count cells at the given index into every row.
// New cells inherit the row-header bit from the adjacent reference cell of
// their row.
func (t *Txn) InsertColumns(tableKey model.NodeKey, index, count int) error {
	if count < 1 {
		return outOfBoundsError("insert count must be positive, got %d", count)
	}
	table, err := resolveTable(t, tableKey)
	if err != nil {
		return err
	}

	// Validate every row before mutating any of them.
	for _, rowKey := range table.ChildKeys() {
		row, err := resolveRow(t, rowKey)
		if err != nil {
			return err
		}
		if index < 0 || index > row.CellCount() {
			return outOfBoundsError("column index %d out of bounds for row %q (%d cells)", index, rowKey, row.CellCount())
		}
	}

	for _, rowKey := range table.ChildKeys() {
		row, err := resolveRow(t, rowKey)
		if err != nil {
			return err
		}
		cells := row.ChildKeys()

		state := model.HeaderNone
		if len(cells) > 0 {
			refIdx := index
			if refIdx >= len(cells) {
				refIdx = len(cells) - 1
			}
			refCell, err := resolveCell(t, cells[refIdx])
			if err != nil {
				return err
			}
			if refCell.HeaderState().Has(model.HeaderRow) {
				state = model.HeaderRow
			}
		}

		newKeys := make([]model.NodeKey, 0, count)
		for i := 0; i < count; i++ {
			cell, err := t.newCellWithParagraph(state)
			if err != nil {
				return err
			}
			wc, err := Writable(t, cell)
			if err != nil {
				return err
			}
			if err := wc.SetParentKey(rowKey); err != nil {
				return err
			}
			newKeys = append(newKeys, cell.Key())
		}

		wr, err := Writable(t, row)
		if err != nil {
			return err
		}
		spliced := make([]model.NodeKey, 0, len(cells)+count)
		spliced = append(spliced, cells[:index]...)
		spliced = append(spliced, newKeys...)
		spliced = append(spliced, cells[index:]...)
		if err := wr.SetChildKeys(spliced); err != nil {
			return err
		}
	}
	return nil
}

// RemoveColumn removes the cell at the given index from every row,
// preserving the order of the remaining columns. The whole operation
// fails before mutating anything if some row lacks the column.
func (t *Txn) RemoveColumn(tableKey model.NodeKey, index int) error {
	table, err := resolveTable(t, tableKey)
	if err != nil {
		return err
	}

	for _, rowKey := range table.ChildKeys() {
		row, err := resolveRow(t, rowKey)
		if err != nil {
			return err
		}
		if index < 0 || index >= row.CellCount() {
			return outOfBoundsError("column index %d out of bounds for row %q (%d cells)", index, rowKey, row.CellCount())
		}
	}

	for _, rowKey := range table.ChildKeys() {
		row, err := resolveRow(t, rowKey)
		if err != nil {
			return err
		}
		if err := t.Destroy(row.ChildKeys()[index]); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTable removes the entire table from the document.
func (t *Txn) RemoveTable(tableKey model.NodeKey) error {
	if _, err := resolveTable(t, tableKey); err != nil {
		return err
	}
	return t.Destroy(tableKey)
}
