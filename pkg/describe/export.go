package describe

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/orcalab/speed/pkg/errors"
)

// DefaultExtension is appended to output filenames that lack it.
const DefaultExtension = ".json"

// defaultOutputDir is the directory under the user's home used when no
// output directory is given.
var defaultOutputDir = filepath.Join(".speed", "output")

// DefaultDirectory returns the default output directory, creating it if
// needed.
func DefaultDirectory() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	dir := filepath.Join(home, defaultOutputDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return dir, nil
}

// WriteJSON encodes the description as indented JSON and writes it to w.
// Map keys are emitted sorted, so identical descriptions produce
// byte-identical output. The output can be re-read with [ReadJSON].
func (d *Description) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalIndent returns the indented JSON encoding of the description.
func (d *Description) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// ExportJSON writes the description to a JSON file at path.
// This is a convenience wrapper around [Description.WriteJSON] for
// file-based output.
func (d *Description) ExportJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return d.WriteJSON(f)
}

// Save writes the description under directory with the given filename and
// returns the final path.
//
// If directory is empty, [DefaultDirectory] is used (and created). If the
// filename does not end in the default extension, it is appended. The
// filename must be a bare name without path components.
func (d *Description) Save(filename, directory string) (string, error) {
	if err := errors.ValidateOutputFilename(filename); err != nil {
		return "", err
	}

	if directory == "" {
		dir, err := DefaultDirectory()
		if err != nil {
			return "", err
		}
		directory = dir
	}

	if !strings.HasSuffix(filename, DefaultExtension) {
		filename += DefaultExtension
	}

	path := filepath.Join(directory, filename)
	if err := d.ExportJSON(path); err != nil {
		return "", err
	}
	return path, nil
}
