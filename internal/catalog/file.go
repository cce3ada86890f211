package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	apperrors "grocery-assistant/internal/common/errors"
	"grocery-assistant/internal/models"
)

// File is the JSON document a catalog is stored in on disk.
type File struct {
	Version     string                `json:"version"`
	LastUpdated string                `json:"lastUpdated"`
	Items       []models.CatalogEntry `json:"items"`
}

func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &f, nil
}

// WriteFile stamps LastUpdated and writes f, creating parent directories.
func WriteFile(f *File, path string) error {
	f.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// Validate rejects empty catalogs, blank or duplicate names, negative
// prices and months outside 1..12.
func (f *File) Validate() error {
	if len(f.Items) == 0 {
		return errors.New("catalog contains no items")
	}

	seen := make(map[string]bool, len(f.Items))
	for i, e := range f.Items {
		name := key(e.Name)
		if name == "" {
			return fmt.Errorf("item %d missing required field: name", i)
		}
		if seen[name] {
			return fmt.Errorf("duplicate item name: %s", name)
		}
		seen[name] = true

		if e.Price < 0 {
			return fmt.Errorf("item %s has negative price %d", name, e.Price)
		}
		for _, m := range e.Seasonal {
			if m < time.January || m > time.December {
				return fmt.Errorf("item %s has invalid seasonal month %d", name, m)
			}
		}
	}
	return nil
}

// Add appends e unless an item with the same name exists.
func (f *File) Add(e models.CatalogEntry) error {
	name := key(e.Name)
	for _, existing := range f.Items {
		if key(existing.Name) == name {
			return fmt.Errorf("item %s already exists", name)
		}
	}
	e.Name = name
	if e.Category == "" {
		e.Category = GuessCategory(name)
	}
	f.Items = append(f.Items, e)
	return nil
}

// LoadFromFile reads and validates a catalog file.
func LoadFromFile(path string) (*Catalog, error) {
	f, err := ReadFile(path)
	if err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(err)
	}
	if err := f.Validate(); err != nil {
		return nil, apperrors.NewCatalogLoadFailedError(fmt.Errorf("%s: %w", path, err))
	}
	for i := range f.Items {
		if f.Items[i].Category == "" {
			f.Items[i].Category = GuessCategory(f.Items[i].Name)
		}
	}
	return New(f.Items), nil
}

// ToFile snapshots c as a file document.
func (c *Catalog) ToFile(version string) *File {
	return &File{Version: version, Items: c.Entries()}
}
