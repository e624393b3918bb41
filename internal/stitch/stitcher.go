package stitch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/kiesman99/spritesheet/pkg/sprite"
)

// Stitcher handles the sheet generation pipeline: discover sprite files,
// decode them, stitch the sheet and persist the artifacts.
type Stitcher struct {
	fs        afero.Fs
	processor *sprite.Processor
	options   *sprite.GenerateOptions
}

// NewStitcher creates a new stitcher instance
func NewStitcher(fs afero.Fs, opts *sprite.GenerateOptions) *Stitcher {
	return &Stitcher{
		fs:        fs,
		processor: sprite.NewProcessor(fs),
		options:   opts,
	}
}

// Run generates a sprite sheet from the given input paths. Each path is a
// sprite file or a directory searched depth-first. Structural failures
// (missing input, undecodable image, oversized grid) abort before anything
// is written; a metadata or label write failure only costs a warning, the
// sheet itself is still saved.
func (s *Stitcher) Run(inputs []string) error {
	// Verify all inputs up front so a typo can't produce a partial sheet.
	var missing []string
	for _, input := range inputs {
		if ok, err := afero.Exists(s.fs, input); err != nil || !ok {
			missing = append(missing, input)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("these files do not exist: %s", strings.Join(missing, ", "))
	}

	var files []string
	for _, input := range inputs {
		found, err := s.collect(input)
		if err != nil {
			return errors.Wrapf(err, "failed to scan %s", input)
		}
		files = append(files, found...)
	}

	images := make([]*sprite.ImageData, 0, len(files))
	labels := make([]string, 0, len(files))
	for _, file := range files {
		img, err := s.processor.ReadImage(file)
		if err != nil {
			return errors.Wrapf(err, "image %q failed to load", file)
		}
		images = append(images, img)
		labels = append(labels, sprite.DeriveLabel(file))
	}

	sheet, desc, err := sprite.Stitch(images, s.options.Grid, s.options.Padding, labels)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(s.options.Output, filepath.Ext(s.options.Output))
	sheetPath := stem + ".png"

	fmt.Fprintf(os.Stderr, "==Sprites: %d\n", len(images))
	fmt.Fprintf(os.Stderr, "==Grid: %d rows x %d cols\n", desc.GridSize.Rows, desc.GridSize.Cols)
	fmt.Fprintf(os.Stderr, "==Cell Size: %dx%d\n", desc.SpriteSize.Width, desc.SpriteSize.Height)
	fmt.Fprintf(os.Stderr, "==Sheet Size: %dx%d\n", desc.SheetSize.Width, desc.SheetSize.Height)

	// Metadata and labels are best-effort; the sheet is the primary artifact.
	if err := sprite.WriteDescriptor(s.fs, sprite.DescriptorPath(sheetPath), desc); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save sheet metadata: %v\n", err)
	}

	if err := s.processor.WritePNG(sheetPath, sheet); err != nil {
		return errors.Wrapf(err, "failed to write sheet %s", sheetPath)
	}

	if err := sprite.WriteLabels(s.fs, sprite.LabelPath(sheetPath), labels); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save label file: %v\n", err)
	}

	return nil
}

// collect returns the files below path in depth-first, lexical order. A file
// path is returned as-is.
func (s *Stitcher) collect(path string) ([]string, error) {
	info, err := s.fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := afero.ReadDir(s.fs, path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		found, err := s.collect(filepath.Join(path, entry.Name()))
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	return files, nil
}
