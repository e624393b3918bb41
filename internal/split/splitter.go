package split

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/kiesman99/spritesheet/pkg/sprite"
)

// Splitter handles the sheet splitting pipeline: resolve parameters from
// flags and sheet metadata, extract the sprites and write them out.
type Splitter struct {
	fs        afero.Fs
	processor *sprite.Processor
	options   *sprite.SplitOptions
}

// NewSplitter creates a new splitter instance
func NewSplitter(fs afero.Fs, opts *sprite.SplitOptions) *Splitter {
	return &Splitter{
		fs:        fs,
		processor: sprite.NewProcessor(fs),
		options:   opts,
	}
}

// Run splits the configured sheet into individual sprite files. All
// structural checks (input existence, sprite size resolution, sheet size)
// happen before the output directory is touched. A label count mismatch is
// only a warning; unmatched sprites stay unlabeled.
func (s *Splitter) Run() error {
	if ok, err := afero.Exists(s.fs, s.options.Input); err != nil || !ok {
		return fmt.Errorf("sprite sheet file %s does not exist", s.options.Input)
	}

	size, pad, labels, err := s.resolveParams()
	if err != nil {
		return err
	}

	sheet, err := s.processor.ReadImage(s.options.Input)
	if err != nil {
		return errors.Wrapf(err, "image %q failed to load", s.options.Input)
	}

	sprites, err := sprite.Split(sheet, size, pad)
	if err != nil {
		return err
	}

	if len(labels) != len(sprites) {
		fmt.Fprintf(os.Stderr, "Warning: label count does not match sprite count (%d != %d)\n",
			len(labels), len(sprites))
	}

	if s.options.ClearDirectory {
		if err := s.fs.RemoveAll(s.options.Output); err != nil {
			return errors.Wrapf(err, "failed to clear %s", s.options.Output)
		}
	}
	if err := s.fs.MkdirAll(s.options.Output, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", s.options.Output)
	}

	separator := s.options.Separator
	if separator == "" {
		separator = " "
	}

	written := 0
	for i, sp := range sprites {
		if s.options.ExcludeBlank && sprite.IsBlank(sp) {
			continue
		}

		// File names keep the 1-based extraction index even when blanks are
		// skipped, so a name always maps back to its grid position.
		name := strconv.Itoa(i + 1)
		if i < len(labels) && labels[i] != "" {
			name += separator + labels[i]
		}

		path := filepath.Join(s.options.Output, name+".png")
		if err := s.processor.WritePNG(path, sp); err != nil {
			return errors.Wrapf(err, "failed to save sprite %d", i+1)
		}
		written++
	}

	fmt.Fprintf(os.Stderr, "==Sprites Extracted: %d\n", len(sprites))
	fmt.Fprintf(os.Stderr, "==Sprites Written: %d\n", written)

	return nil
}

// resolveParams merges the sprite size, padding and labels from their
// sources, in precedence order: explicit flags, then the metadata sidecar
// (unless ignored), then defaults. Padding defaults to (0,0); a missing
// sprite size is fatal.
func (s *Splitter) resolveParams() (sprite.CellSize, sprite.Padding, []string, error) {
	size := s.options.Size
	pad := s.options.Padding
	var labels []string

	if s.options.LabelPath != "" {
		read, err := sprite.ReadLabels(s.fs, s.options.LabelPath)
		if err != nil {
			return sprite.CellSize{}, sprite.Padding{}, nil,
				errors.Wrapf(err, "label file %s could not be read", s.options.LabelPath)
		}
		labels = read
	}

	if !s.options.IgnoreMetadata {
		metaPath := sprite.DescriptorPath(s.options.Input)
		if ok, _ := afero.Exists(s.fs, metaPath); ok {
			desc, err := sprite.ReadDescriptor(s.fs, metaPath)
			if err != nil {
				return sprite.CellSize{}, sprite.Padding{}, nil, err
			}
			fmt.Fprintln(os.Stderr, "Found attached metadata.")

			if size == nil {
				size = &desc.SpriteSize
				fmt.Fprintf(os.Stderr, "sprite size set from metadata to %dx%d\n", size.Width, size.Height)
			}
			if pad == nil {
				pad = &desc.SpritePadding
				fmt.Fprintf(os.Stderr, "sprite padding set from metadata to (%d,%d)\n", pad.Horizontal, pad.Vertical)
			}
			if labels == nil && len(desc.Labels) > 0 {
				labels = desc.Labels
				fmt.Fprintln(os.Stderr, "labels set from metadata")
			}
		}
	}

	if size == nil {
		return sprite.CellSize{}, sprite.Padding{}, nil, sprite.ErrMissingSpriteSize
	}
	if pad == nil {
		pad = &sprite.Padding{}
	}

	return *size, *pad, labels, nil
}
