package sprite

// Split crops a sheet back into individual sprites of the given size,
// walking cells in the same row-major order Stitch places them. Only cells
// whose full rectangle lies inside the sheet are produced; an incomplete
// trailing row or column is dropped.
func Split(sheet *ImageData, size CellSize, pad Padding) ([]*ImageData, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return nil, ErrInvalidSpriteSize
	}
	if pad.Horizontal < 0 || pad.Vertical < 0 {
		return nil, ErrInvalidPadding
	}
	if sheet.Width < size.Width || sheet.Height < size.Height {
		return nil, &SheetTooSmallError{
			Sheet: SheetSize{Width: sheet.Width, Height: sheet.Height},
			Size:  size,
		}
	}

	grid := FitGrid(SheetSize{Width: sheet.Width, Height: sheet.Height}, size, pad)

	sprites := make([]*ImageData, 0, grid.Cells())
	for i := 0; i < grid.Cells(); i++ {
		rect := CellRect(i, size, pad, grid.Cols)

		buf := make([]byte, size.Width*size.Height*4)
		for y := 0; y < size.Height; y++ {
			srcIdx := ((rect.Min.Y+y)*sheet.Width + rect.Min.X) * 4
			dstIdx := y * size.Width * 4
			copy(buf[dstIdx:dstIdx+size.Width*4], sheet.Buf[srcIdx:srcIdx+size.Width*4])
		}

		sprites = append(sprites, &ImageData{
			Buf:    buf,
			Width:  size.Width,
			Height: size.Height,
			Depth:  4,
		})
	}

	return sprites, nil
}
