package sprite

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
)

// Sprite files are commonly prefixed with a frame number ("03_hero.png");
// the label is what remains after stripping it.
var labelPrefix = regexp.MustCompile(`^\d+[\s_-]*`)

// DeriveLabel extracts a label from a sprite file name. The extension and a
// leading run of digits plus separator characters are removed; an empty
// string means the sprite has no label.
func DeriveLabel(name string) string {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return labelPrefix.ReplaceAllString(stem, "")
}

// ReadLabels reads a label file: one label per line, line order is sprite
// order, an empty line marks an unlabeled sprite.
func ReadLabels(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	// Only the final newline is a terminator; further empty lines are
	// absent labels and must be kept.
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	labels := make([]string, len(lines))
	for i, line := range lines {
		labels[i] = strings.TrimSpace(line)
	}
	return labels, nil
}

// WriteLabels writes labels in the format ReadLabels expects.
func WriteLabels(fs afero.Fs, path string, labels []string) error {
	var sb strings.Builder
	for _, label := range labels {
		sb.WriteString(label)
		sb.WriteByte('\n')
	}
	return afero.WriteFile(fs, path, []byte(sb.String()), 0o644)
}
