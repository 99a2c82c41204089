// Package levels provides level loading for Snek: the embedded built-in
// levels plus YAML files from a directory. It depends on the core package
// but the core never depends on it.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vovakirdan/tui-snek/internal/games/snek/core"
	"github.com/vovakirdan/tui-snek/internal/games/snek/levels/formats"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Data     core.LevelData
	Metadata map[string]string
	FilePath string // empty for built-in levels
}

// Builtin reports whether the level ships with the binary.
func (l Level) Builtin() bool {
	return l.FilePath == ""
}

// Loader handles loading levels from a directory.
// Levels without a layout are sized Width x Height.
type Loader struct {
	Root   string
	Width  int
	Height int
	Logger *log.Logger
}

// NewLoader creates a new level loader.
func NewLoader(root string, width, height int) *Loader {
	return &Loader{Root: root, Width: width, Height: height}
}

// LoadBuiltin parses the levels embedded in the binary, sorted by ID.
func (l *Loader) LoadBuiltin() ([]Level, error) {
	entries, err := fs.ReadDir(builtinFS, "data")
	if err != nil {
		return nil, fmt.Errorf("levels: cannot read built-in levels: %w", err)
	}

	var levels []Level
	for _, e := range entries {
		data, err := builtinFS.ReadFile(path.Join("data", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("levels: cannot read %s: %w", e.Name(), err)
		}
		parsed, err := formats.ParseYAML(data, l.Width, l.Height)
		if err != nil {
			return nil, fmt.Errorf("levels: built-in %s: %w", e.Name(), err)
		}
		levels = append(levels, fromParsed(parsed, ""))
	}

	sortLevels(levels)
	return levels, nil
}

// LoadAll recursively scans and loads all level files under Root.
// Invalid files are skipped with a warning.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !IsLevelFile(p) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			if l.Logger != nil {
				l.Logger.Warn("skipping level file", "path", p, "err", err)
			}
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}

	sortLevels(levels)
	return levels, nil
}

// LoadFile loads a single level file. Files without an id use their base name.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading file %s: %w", p, err)
	}

	parsed, err := formats.ParseYAML(data, l.Width, l.Height)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing file %s: %w", p, err)
	}
	if parsed.ID == "" {
		parsed.ID = strings.TrimSuffix(filepath.Base(p), filepath.Ext(p))
		if parsed.Name == "" {
			parsed.Name = parsed.ID
		}
	}

	return fromParsed(parsed, p), nil
}

// Catalog returns the built-in levels merged with the levels under Root.
// A directory level replaces a built-in one with the same ID. An empty Root
// yields only the built-in levels.
func (l *Loader) Catalog() ([]Level, error) {
	builtin, err := l.LoadBuiltin()
	if err != nil {
		return nil, err
	}
	if l.Root == "" {
		return builtin, nil
	}

	custom, err := l.LoadAll()
	if err != nil {
		return nil, err
	}
	return Merge(builtin, custom), nil
}

// Merge overlays custom levels onto base by ID and returns the result sorted.
func Merge(base, custom []Level) []Level {
	byID := make(map[string]Level, len(base)+len(custom))
	for _, lvl := range base {
		byID[lvl.ID] = lvl
	}
	for _, lvl := range custom {
		byID[lvl.ID] = lvl
	}

	out := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		out = append(out, lvl)
	}
	sortLevels(out)
	return out
}

// ErrNotFound is returned by Find for an unknown level ID.
var ErrNotFound = errors.New("level not found")

// Find returns the level with the given ID.
func Find(levels []Level, id string) (Level, error) {
	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: %w: %s", ErrNotFound, id)
}

// IsLevelFile reports whether p has a supported level file extension.
func IsLevelFile(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func fromParsed(p formats.Level, filePath string) Level {
	return Level{
		ID:       p.ID,
		Name:     p.Name,
		Data:     p.Data,
		Metadata: p.Metadata,
		FilePath: filePath,
	}
}

func sortLevels(levels []Level) {
	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
}
