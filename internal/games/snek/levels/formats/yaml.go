// Package formats provides level file format parsers for Snek.
package formats

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-snek/internal/games/snek/core"
	"gopkg.in/yaml.v3"
)

// ValidationError contains details about a rejected level file.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validation error codes.
const (
	CodeBadSize        = "BAD_SIZE"
	CodeRaggedRow      = "RAGGED_ROW"
	CodeUnknownGlyph   = "UNKNOWN_GLYPH"
	CodeMultipleStarts = "MULTIPLE_STARTS"
	CodeBadOrientation = "BAD_ORIENTATION"
)

// MaxSide is the largest board width or height a level may declare.
const MaxSide = 256

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID           string            `yaml:"id"`
	Name         string            `yaml:"name"`
	Size         YAMLSize          `yaml:"size,omitempty"`
	Layout       []string          `yaml:"layout,omitempty"`
	Orientations []string          `yaml:"orientations,omitempty"`
	Metadata     map[string]string `yaml:"metadata,omitempty"`
}

// YAMLSize represents board dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Data     core.LevelData
	Metadata map[string]string
}

// glyphs maps layout characters to tile types.
var glyphs = map[rune]core.TileType{
	'.': core.TileEmpty,
	'#': core.TileWall,
	'S': core.TileStartMarker,
	'a': core.TileApple,
	'l': core.TileLemon,
	'b': core.TileBomb,
	'*': core.TileExplodingBomb,
}

// typeGlyphs is the reverse of glyphs.
var typeGlyphs = func() map[core.TileType]rune {
	m := make(map[core.TileType]rune, len(glyphs))
	for r, typ := range glyphs {
		m[typ] = r
	}
	return m
}()

// Glyph returns the layout character for a tile type, or '?' if the type
// cannot appear in a level file.
func Glyph(t core.TileType) rune {
	if r, ok := typeGlyphs[t]; ok {
		return r
	}
	return '?'
}

// checkSize rejects boards that are empty or larger than MaxSide per side.
func checkSize(w, h int) error {
	if w <= 0 || h <= 0 {
		return ValidationError{
			Code:    CodeBadSize,
			Message: fmt.Sprintf("level size %dx%d must be positive", w, h),
		}
	}
	if w > MaxSide || h > MaxSide {
		return ValidationError{
			Code:    CodeBadSize,
			Message: fmt.Sprintf("level size %dx%d exceeds %dx%d", w, h, MaxSide, MaxSide),
		}
	}
	return nil
}

// ParseYAML parses a YAML level file. Levels without a layout are empty
// boards of the declared size, falling back to defaultW x defaultH, with a
// start marker in the centre.
func ParseYAML(data []byte, defaultW, defaultH int) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := Level{
		ID:       yl.ID,
		Name:     yl.Name,
		Metadata: yl.Metadata,
	}
	if level.Name == "" {
		level.Name = level.ID
	}

	if len(yl.Layout) == 0 {
		w, h := yl.Size.W, yl.Size.H
		if w == 0 && h == 0 {
			w, h = defaultW, defaultH
		}
		if err := checkSize(w, h); err != nil {
			return Level{}, err
		}
		level.Data = core.NewLevelData(w, h)
		level.Data.Set(w/2, h/2, core.LevelCell{Type: core.TileStartMarker})
		return level, nil
	}

	d, err := parseLayout(yl)
	if err != nil {
		return Level{}, err
	}
	level.Data = d
	return level, nil
}

// parseLayout builds level data from layout and orientation rows.
func parseLayout(yl YAMLLevel) (core.LevelData, error) {
	h := len(yl.Layout)
	w := len([]rune(yl.Layout[0]))
	if w == 0 {
		return core.LevelData{}, ValidationError{Code: CodeBadSize, Message: "layout rows are empty"}
	}
	if err := checkSize(w, h); err != nil {
		return core.LevelData{}, err
	}
	if (yl.Size.W != 0 && yl.Size.W != w) || (yl.Size.H != 0 && yl.Size.H != h) {
		return core.LevelData{}, ValidationError{
			Code:    CodeBadSize,
			Message: fmt.Sprintf("size %dx%d does not match layout %dx%d", yl.Size.W, yl.Size.H, w, h),
		}
	}

	if len(yl.Orientations) > 0 && len(yl.Orientations) != h {
		return core.LevelData{}, ValidationError{
			Code:    CodeBadOrientation,
			Message: fmt.Sprintf("orientations has %d rows, layout has %d", len(yl.Orientations), h),
		}
	}

	d := core.NewLevelData(w, h)
	starts := 0
	for y, row := range yl.Layout {
		cells := []rune(row)
		if len(cells) != w {
			return core.LevelData{}, ValidationError{
				Code:    CodeRaggedRow,
				Message: fmt.Sprintf("row %d has %d cells, expected %d", y, len(cells), w),
			}
		}

		var orients []rune
		if len(yl.Orientations) > 0 {
			orients = []rune(yl.Orientations[y])
			if len(orients) != w {
				return core.LevelData{}, ValidationError{
					Code:    CodeBadOrientation,
					Message: fmt.Sprintf("orientation row %d has %d cells, expected %d", y, len(orients), w),
				}
			}
		}

		for x, r := range cells {
			typ, ok := glyphs[r]
			if !ok {
				return core.LevelData{}, ValidationError{
					Code:    CodeUnknownGlyph,
					Message: fmt.Sprintf("unknown glyph %q at (%d,%d)", r, x, y),
				}
			}
			if typ == core.TileStartMarker {
				starts++
				if starts > 1 {
					return core.LevelData{}, ValidationError{
						Code:    CodeMultipleStarts,
						Message: fmt.Sprintf("second start marker at (%d,%d)", x, y),
					}
				}
			}

			orient := core.DirUp
			if orients != nil {
				orient, ok = parseOrientation(orients[x])
				if !ok {
					return core.LevelData{}, ValidationError{
						Code:    CodeBadOrientation,
						Message: fmt.Sprintf("bad orientation %q at (%d,%d)", orients[x], x, y),
					}
				}
			}
			d.Set(x, y, core.LevelCell{Type: typ, Orientation: orient})
		}
	}

	return d, nil
}

// parseOrientation reads one orientation cell: a digit 0-3 in clockwise
// order starting at up, or '.' for up.
func parseOrientation(r rune) (core.Direction, bool) {
	if r == '.' {
		return core.DirUp, true
	}
	if r < '0' || r > '3' {
		return core.DirUp, false
	}
	return core.Direction(r - '0'), true
}

// FormatLayout renders level data back into layout rows.
func FormatLayout(d core.LevelData) []string {
	rows := make([]string, d.Height)
	var b strings.Builder
	for y := 0; y < d.Height; y++ {
		b.Reset()
		for x := 0; x < d.Width; x++ {
			b.WriteRune(Glyph(d.At(x, y).Type))
		}
		rows[y] = b.String()
	}
	return rows
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
