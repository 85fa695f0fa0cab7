// Package catalog reads the static races.json data file.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/padraicbc/umaplan/models"
)

// ErrRaceNotFound is returned by FindByName and FindByID.
var ErrRaceNotFound = errors.New("race not found")

// File reads a races.json file. Every call reads the file fresh so a
// refreshed data file is picked up without a restart.
type File struct {
	path   string
	logger *zap.Logger
}

// NewFile returns a catalog backed by path.
func NewFile(path string, logger *zap.Logger) *File {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &File{path: path, logger: logger}
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Raw returns the file contents after checking they parse as a catalog.
func (f *File) Raw(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", f.path, err)
	}
	if _, err := Parse(b); err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", f.path, err)
	}
	return b, nil
}

// Load returns every race in file order.
func (f *File) Load(ctx context.Context) ([]models.Race, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", f.path, err)
	}
	races, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", f.path, err)
	}
	return races, nil
}

// LoadOrEmpty is Load with failures logged and degraded to an empty catalog.
func (f *File) LoadOrEmpty(ctx context.Context) []models.Race {
	races, err := f.Load(ctx)
	if err != nil {
		f.logger.Error("error loading race data", zap.String("path", f.path), zap.Error(err))
		return []models.Race{}
	}
	return races
}

// FindByName returns the race whose name matches exactly.
func (f *File) FindByName(ctx context.Context, name string) (models.Race, error) {
	races, err := f.Load(ctx)
	if err != nil {
		return models.Race{}, err
	}
	return FindByName(races, name)
}

// FindByID returns the race with id.
func (f *File) FindByID(ctx context.Context, id int) (models.Race, error) {
	races, err := f.Load(ctx)
	if err != nil {
		return models.Race{}, err
	}
	return FindByID(races, id)
}

// Parse decodes a { "races": [...] } document.
func Parse(b []byte) ([]models.Race, error) {
	var c models.Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if c.Races == nil {
		return nil, errors.New("parse catalog: missing races array")
	}
	return c.Races, nil
}

// FindByName looks a race up by exact, case-sensitive name.
func FindByName(races []models.Race, name string) (models.Race, error) {
	for _, r := range races {
		if r.Name == name {
			return r, nil
		}
	}
	return models.Race{}, fmt.Errorf("%q: %w", name, ErrRaceNotFound)
}

// FindByID looks a race up by id.
func FindByID(races []models.Race, id int) (models.Race, error) {
	for _, r := range races {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Race{}, fmt.Errorf("id %d: %w", id, ErrRaceNotFound)
}
