package sprite

// Stitch composes the given sprites into a single sheet image, filling grid
// cells in row-major order. The cell size is the per-axis maximum over all
// inputs; smaller sprites are placed at their cell's top-left corner and the
// remainder of the cell stays transparent. Sprites are never rescaled, so
// inputs are expected to be pre-trimmed to a common size for clean results.
//
// The labels slice must be order-aligned with images; an empty string marks
// an absent label. The returned descriptor records everything needed to split
// the sheet back into the original sprites.
func Stitch(images []*ImageData, grid GridSpec, pad Padding, labels []string) (*ImageData, *Descriptor, error) {
	if len(images) == 0 {
		return nil, nil, ErrNoImages
	}
	if grid.Rows <= 0 || grid.Cols <= 0 {
		return nil, nil, ErrInvalidGrid
	}
	if pad.Horizontal < 0 || pad.Vertical < 0 {
		return nil, nil, ErrInvalidPadding
	}
	if len(images) > grid.Cells() {
		return nil, nil, &CapacityError{Sprites: len(images), Grid: grid}
	}

	// Cell size is the maximum sprite extent along each axis.
	var size CellSize
	for _, img := range images {
		if img.Width > size.Width {
			size.Width = img.Width
		}
		if img.Height > size.Height {
			size.Height = img.Height
		}
	}

	sheetSize := TotalSheetSize(grid, size, pad)

	// Fully transparent background, so unused cells and the slack of
	// undersized sprites read as blank.
	buf := make([]byte, sheetSize.Width*sheetSize.Height*4)

	for i, img := range images {
		rect := CellRect(i, size, pad, grid.Cols)

		for y := 0; y < img.Height; y++ {
			srcIdx := y * img.Width * 4
			dstIdx := ((rect.Min.Y+y)*sheetSize.Width + rect.Min.X) * 4
			copy(buf[dstIdx:dstIdx+img.Width*4], img.Buf[srcIdx:srcIdx+img.Width*4])
		}
	}

	sheet := &ImageData{
		Buf:    buf,
		Width:  sheetSize.Width,
		Height: sheetSize.Height,
		Depth:  4,
	}

	desc := &Descriptor{
		SpriteSize:    size,
		SpritePadding: pad,
		GridSize:      grid,
		SheetSize:     sheetSize,
		Labels:        append([]string(nil), labels...),
	}

	return sheet, desc, nil
}
