package sprite

import "image"

// CellRect returns the pixel rectangle of the cell at the given row-major
// index. The same formula is used when placing sprites onto a sheet and when
// cropping them back out, so a stitched sheet always splits into the original
// cells.
func CellRect(index int, size CellSize, pad Padding, cols int) image.Rectangle {
	x := (index % cols) * (size.Width + pad.Horizontal)
	y := (index / cols) * (size.Height + pad.Vertical)
	return image.Rect(x, y, x+size.Width, y+size.Height)
}

// TotalSheetSize returns the sheet dimensions for a fully populated grid.
// Padding only separates cells, the border carries none.
func TotalSheetSize(grid GridSpec, size CellSize, pad Padding) SheetSize {
	return SheetSize{
		Width:  grid.Cols*size.Width + (grid.Cols-1)*pad.Horizontal,
		Height: grid.Rows*size.Height + (grid.Rows-1)*pad.Vertical,
	}
}

// FitGrid returns how many whole cells fit into a sheet of the given size
// along each axis. An incomplete trailing row or column is dropped; trailing
// padding after the last cell is not required.
func FitGrid(sheet SheetSize, size CellSize, pad Padding) GridSpec {
	return GridSpec{
		Rows: (sheet.Height + pad.Vertical) / (size.Height + pad.Vertical),
		Cols: (sheet.Width + pad.Horizontal) / (size.Width + pad.Horizontal),
	}
}
