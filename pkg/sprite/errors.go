package sprite

import (
	"errors"
	"fmt"
)

// ErrNoImages is returned when a stitch is requested with no input sprites.
var ErrNoImages = errors.New("no input images provided")

// ErrMissingSpriteSize is returned when a split has no sprite size available
// from either explicit parameters or sheet metadata.
var ErrMissingSpriteSize = errors.New("sprite size was not provided")

// ErrInvalidSpriteSize is returned for a zero or negative sprite size.
var ErrInvalidSpriteSize = errors.New("sprite size must be positive")

// ErrInvalidPadding is returned for negative padding.
var ErrInvalidPadding = errors.New("sprite padding must not be negative")

// ErrInvalidGrid is returned for a grid with zero or negative dimensions.
var ErrInvalidGrid = errors.New("grid rows and cols must be positive")

// CapacityError reports more sprites than the grid has cells.
type CapacityError struct {
	Sprites int
	Grid    GridSpec
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%d images exceed the %dx%d grid (%d cells)",
		e.Sprites, e.Grid.Rows, e.Grid.Cols, e.Grid.Cells())
}

// SheetTooSmallError reports a sheet smaller than the requested sprite size.
type SheetTooSmallError struct {
	Sheet SheetSize
	Size  CellSize
}

func (e *SheetTooSmallError) Error() string {
	return fmt.Sprintf("sheet %dx%d is smaller than sprite size %dx%d",
		e.Sheet.Width, e.Sheet.Height, e.Size.Width, e.Size.Height)
}
