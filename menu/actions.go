package menu

import (
	"fmt"

	"github.com/penmark/tableedit/editor"
	"github.com/penmark/tableedit/model"
	"github.com/penmark/tableedit/theme"
)

// anchorContext locates the anchor cell within its table on committed
// state before a mutation runs.
type anchorContext struct {
	cellKey  model.NodeKey
	tableKey model.NodeKey
	rowIdx   int
	colIdx   int
}

func (m *Menu) anchorContext() (anchorContext, error) {
	if m.anchor == "" {
		return anchorContext{}, fmt.Errorf("no cell targeted")
	}
	table, err := m.ed.NearestTable(m.anchor)
	if err != nil {
		return anchorContext{}, err
	}
	rowIdx, err := m.ed.RowIndex(m.anchor)
	if err != nil {
		return anchorContext{}, err
	}
	colIdx, err := m.ed.ColumnIndex(m.anchor)
	if err != nil {
		return anchorContext{}, err
	}
	return anchorContext{
		cellKey:  m.anchor,
		tableKey: table.Key(),
		rowIdx:   rowIdx,
		colIdx:   colIdx,
	}, nil
}

// rowRange returns the inclusive row span the action applies to: the grid
// selection's rows when one is active, otherwise the anchor row alone.
func (m *Menu) rowRange(ctx anchorContext) (from, to int) {
	if grid, ok := m.ed.Selection().(editor.GridSelection); ok && grid.TableKey == ctx.tableKey {
		return grid.FromRow, grid.ToRow
	}
	return ctx.rowIdx, ctx.rowIdx
}

// columnRange returns the inclusive column span the action applies to.
func (m *Menu) columnRange(ctx anchorContext) (from, to int) {
	if grid, ok := m.ed.Selection().(editor.GridSelection); ok && grid.TableKey == ctx.tableKey {
		return grid.FromColumn, grid.ToColumn
	}
	return ctx.colIdx, ctx.colIdx
}

// InsertRowsAbove inserts rows above the selection. The count was
// snapshotted when the menu opened.
func (m *Menu) InsertRowsAbove() error {
	ctx, err := m.anchorContext()
	if err != nil {
		return m.finish("insert rows above", err)
	}
	from, _ := m.rowRange(ctx)
	err = m.ed.Update(func(t *editor.Txn) error {
		return t.InsertRows(ctx.tableKey, from, m.insertRows)
	})
	return m.finish("insert rows above", err)
}

// InsertRowsBelow inserts rows below the selection.
func (m *Menu) InsertRowsBelow() error {
	ctx, err := m.anchorContext()
	if err != nil {
		return m.finish("insert rows below", err)
	}
	_, to := m.rowRange(ctx)
	err = m.ed.Update(func(t *editor.Txn) error {
		return t.InsertRows(ctx.tableKey, to+1, m.insertRows)
	})
	return m.finish("insert rows below", err)
}

// InsertColumnsLeft inserts columns to the left of the selection.
func (m *Menu) InsertColumnsLeft() error {
	ctx, err := m.anchorContext()
	if err != nil {
		return m.finish("insert columns left", err)
	}
	from, _ := m.columnRange(ctx)
	err = m.ed.Update(func(t *editor.Txn) error {
		return t.InsertColumns(ctx.tableKey, from, m.insertColumns)
	})
	return m.finish("insert columns left", err)
}

// InsertColumnsRight inserts columns to the right of the selection.
func (m *Menu) InsertColumnsRight() error {
	ctx, err := m.anchorContext()
	if err != nil {
		return m.finish("insert columns right", err)
	}
	_, to := m.columnRange(ctx)
	err = m.ed.Update(func(t *editor.Txn) error {
		return t.InsertColumns(ctx.tableKey, to+1, m.insertColumns)
	})
	return m.finish("insert columns right", err)
}

// DeleteRow removes the anchor cell's row.
func (m *Menu) DeleteRow() error {
	ctx, err := m.anchorContext()
	if err != nil {
		return m.finish("delete row", err)
	}
	err = m.ed.Update(func(t *editor.Txn) error {
		return t.RemoveRow(ctx.tableKey, ctx.rowIdx)
	})
	return m.finish("delete row", err)
}

// DeleteColumn removes the anchor cell's column from every row.
func (m *Menu) DeleteColumn() error {
	ctx, err := m.anchorContext()
	if err != nil {
		return m.finish("delete column", err)
	}
	err = m.ed.Update(func(t *editor.Txn) error {
		return t.RemoveColumn(ctx.tableKey, ctx.colIdx)
	})
	return m.finish("delete column", err)
}

// DeleteTable removes the whole table.
func (m *Menu) DeleteTable() error {
	ctx, err := m.anchorContext()
	if err != nil {
		return m.finish("delete table", err)
	}
	err = m.ed.Update(func(t *editor.Txn) error {
		return t.RemoveTable(ctx.tableKey)
	})
	return m.finish("delete table", err)
}

// ToggleRowHeaders flips the row-header part on every cell of the anchor
// cell's row. Cells already carrying the part lose it; the rest gain it.
func (m *Menu) ToggleRowHeaders() error {
	ctx, err := m.anchorContext()
	if err != nil {
		return m.finish("toggle row headers", err)
	}
	err = m.ed.Update(func(t *editor.Txn) error {
		row, err := t.NearestRow(ctx.cellKey)
		if err != nil {
			return err
		}
		for _, cellKey := range row.ChildKeys() {
			cell, err := t.NearestCell(cellKey)
			if err != nil {
				return err
			}
			wc, err := editor.Writable(t, cell)
			if err != nil {
				return err
			}
			if err := wc.ToggleHeader(model.HeaderRow); err != nil {
				return err
			}
		}
		return nil
	})
	return m.finish("toggle row headers", err)
}

// ToggleColumnHeaders flips the column-header part on the cell at the
// anchor column of every row. A ragged row lacking the column aborts the
// whole toggle.
func (m *Menu) ToggleColumnHeaders() error {
	ctx, err := m.anchorContext()
	if err != nil {
		return m.finish("toggle column headers", err)
	}
	err = m.ed.Update(func(t *editor.Txn) error {
		table, err := t.NearestTable(ctx.cellKey)
		if err != nil {
			return err
		}
		for rowIdx := range table.ChildKeys() {
			cell, err := t.CellAt(table.Key(), rowIdx, ctx.colIdx)
			if err != nil {
				return err
			}
			wc, err := editor.Writable(t, cell)
			if err != nil {
				return err
			}
			if err := wc.ToggleHeader(model.HeaderColumn); err != nil {
				return err
			}
		}
		return nil
	})
	return m.finish("toggle column headers", err)
}

// ApplyCellStyle persists the staged drafts on the anchor cell: the
// background color when set, and a border shorthand per non-empty edge
// draft. Empty drafts leave their edge untouched. Colors are validated
// before anything mutates.
func (m *Menu) ApplyCellStyle() error {
	ctx, err := m.anchorContext()
	if err != nil {
		return m.finish("apply cell style", err)
	}
	drafts := m.drafts

	if drafts.Background != "" && !theme.IsColor(drafts.Background) {
		return m.finish("apply cell style", fmt.Errorf("invalid background color %q", drafts.Background))
	}
	edges := []struct {
		edge  model.Edge
		draft BorderDraft
	}{
		{model.EdgeTop, drafts.Top},
		{model.EdgeRight, drafts.Right},
		{model.EdgeBottom, drafts.Bottom},
		{model.EdgeLeft, drafts.Left},
	}
	for _, e := range edges {
		if err := e.draft.validate(); err != nil {
			return m.finish("apply cell style", err)
		}
	}

	err = m.ed.Update(func(t *editor.Txn) error {
		cell, err := t.NearestCell(ctx.cellKey)
		if err != nil {
			return err
		}
		wc, err := editor.Writable(t, cell)
		if err != nil {
			return err
		}
		if drafts.Background != "" {
			if err := wc.SetBackgroundColor(drafts.Background); err != nil {
				return err
			}
		}
		for _, e := range edges {
			if e.draft.IsZero() {
				continue
			}
			if err := wc.SetBorderEdge(e.edge, e.draft.compose()); err != nil {
				return err
			}
		}
		return nil
	})
	return m.finish("apply cell style", err)
}
