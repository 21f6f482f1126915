package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"restaurant-workers/internal/models"
)

// Encode renders restaurants as a 4-space indented JSON array. An empty
// collection encodes as [].
func Encode(w io.Writer, restaurants []models.CleanRestaurant) error {
	if restaurants == nil {
		restaurants = []models.CleanRestaurant{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(restaurants)
}

// Validate checks restaurants against the handoff contract.
func Validate(restaurants []models.CleanRestaurant) error {
	if restaurants == nil {
		restaurants = []models.CleanRestaurant{}
	}
	return contract.Validate(restaurants)
}

// WriteFile validates and writes restaurants to path. The file is written to a
// temporary sibling and renamed, so path holds either the old or the new
// artifact, never a partial one.
func WriteFile(path string, restaurants []models.CleanRestaurant) error {
	if err := Validate(restaurants); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, restaurants); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace output: %w", err)
	}
	return nil
}

// ReadFile loads a cleaned dataset written by WriteFile.
func ReadFile(path string) ([]models.CleanRestaurant, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open cleaned dataset: %w", err)
	}
	var out []models.CleanRestaurant
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode cleaned dataset: %w", err)
	}
	return out, nil
}
