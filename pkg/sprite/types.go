package sprite

// ImageData holds decoded image data
type ImageData struct {
	Buf    []byte
	Width  int
	Height int
	Depth  int // channels of the source: 1=grayscale, 3=RGB, 4=RGBA; Buf is always RGBA
}

// CellSize is the pixel size reserved for one sprite on the sheet.
type CellSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Padding is the gap between adjacent cells. It is not applied around
// the sheet border.
type Padding struct {
	Horizontal int `json:"horizontal"`
	Vertical   int `json:"vertical"`
}

// GridSpec describes the sheet layout in cells.
type GridSpec struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SheetSize is the total pixel size of a stitched sheet.
type SheetSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Cells returns the total cell capacity of the grid.
func (g GridSpec) Cells() int {
	return g.Rows * g.Cols
}

// GenerateOptions contains all configuration for sheet generation
type GenerateOptions struct {
	Output  string
	Grid    GridSpec
	Padding Padding
}

// SplitOptions contains all configuration for sheet splitting
type SplitOptions struct {
	Input          string
	Output         string
	Size           *CellSize // nil: resolve from metadata
	Padding        *Padding  // nil: resolve from metadata, default (0,0)
	LabelPath      string
	Separator      string
	ClearDirectory bool
	IgnoreMetadata bool
	ExcludeBlank   bool
}
