package sprite

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Descriptor is the metadata record emitted next to a stitched sheet. It
// carries everything a later split needs to recover the original sprites.
// A descriptor is produced once per stitch and never mutated afterwards.
type Descriptor struct {
	SpriteSize    CellSize  `json:"sprite_size"`
	SpritePadding Padding   `json:"sprite_padding"`
	GridSize      GridSpec  `json:"grid_size"`
	SheetSize     SheetSize `json:"sheet_size"`
	// Labels are ordered by placement (row-major); an absent label is
	// serialized as the empty string.
	Labels []string `json:"labels"`
}

// Validate checks the descriptor's internal consistency: dimensions must be
// usable, the sheet size must follow from grid, cell size and padding, and
// the label count must not exceed the grid capacity.
func (d *Descriptor) Validate() error {
	if d.SpriteSize.Width <= 0 || d.SpriteSize.Height <= 0 {
		return ErrInvalidSpriteSize
	}
	if d.SpritePadding.Horizontal < 0 || d.SpritePadding.Vertical < 0 {
		return ErrInvalidPadding
	}
	if d.GridSize.Rows <= 0 || d.GridSize.Cols <= 0 {
		return ErrInvalidGrid
	}
	want := TotalSheetSize(d.GridSize, d.SpriteSize, d.SpritePadding)
	if d.SheetSize != want {
		return fmt.Errorf("sheet size %dx%d does not match grid layout (want %dx%d)",
			d.SheetSize.Width, d.SheetSize.Height, want.Width, want.Height)
	}
	if len(d.Labels) > d.GridSize.Cells() {
		return fmt.Errorf("%d labels exceed grid capacity %d", len(d.Labels), d.GridSize.Cells())
	}
	return nil
}

// DescriptorPath derives the metadata sidecar path for a sheet path or
// output stem, e.g. "out/sheet.png" -> "out/sheet-metadata.json".
func DescriptorPath(sheetPath string) string {
	return sidecarPath(sheetPath, "-metadata.json")
}

// LabelPath derives the label sidecar path for a sheet path or output stem.
func LabelPath(sheetPath string) string {
	return sidecarPath(sheetPath, "-labels.txt")
}

func sidecarPath(sheetPath, suffix string) string {
	stem := strings.TrimSuffix(sheetPath, filepath.Ext(sheetPath))
	return stem + suffix
}

// WriteDescriptor persists the descriptor as indented JSON.
func WriteDescriptor(fs afero.Fs, path string, d *Descriptor) error {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, append(data, '\n'), 0o644)
}

// ReadDescriptor loads and validates a descriptor sidecar.
func ReadDescriptor(fs afero.Fs, path string) (*Descriptor, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("invalid metadata file %s: %v", path, err)
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid metadata file %s: %v", path, err)
	}
	return &d, nil
}
