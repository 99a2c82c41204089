package snek

import (
	"fmt"
	"strings"
	"unicode/utf8"

	platformcore "github.com/vovakirdan/tui-snek/internal/core"
	"github.com/vovakirdan/tui-snek/internal/games/snek/core"
)

const (
	hudHeight = 2
	cellW     = 2 // terminal columns per board cell
)

// glyph is how one board cell looks on screen: cellW runes and a color.
type glyph struct {
	text  string
	color platformcore.Color
}

var tileGlyphs = map[core.TileType]glyph{
	core.TileEmpty:             {"  ", platformcore.ColorDefault},
	core.TileStartMarker:       {"  ", platformcore.ColorDefault},
	core.TileWall:              {"██", platformcore.ColorGray},
	core.TileSnakeBodyStraight: {"██", platformcore.ColorGreen},
	core.TileSnakeBodyLeft:     {"▓▓", platformcore.ColorGreen},
	core.TileSnakeBodyRight:    {"▓▓", platformcore.ColorGreen},
	core.TileSnakeTail:         {"▒▒", platformcore.ColorGreen},
	core.TileApple:             {"()", platformcore.ColorBrightRed},
	core.TileLemon:             {"()", platformcore.ColorBrightYellow},
	core.TileBomb:              {"<>", platformcore.ColorMagenta},
}

var headGlyphs = map[core.Direction]glyph{
	core.DirUp:    {"^^", platformcore.ColorBrightGreen},
	core.DirRight: {">>", platformcore.ColorBrightGreen},
	core.DirDown:  {"vv", platformcore.ColorBrightGreen},
	core.DirLeft:  {"<<", platformcore.ColorBrightGreen},
}

// explosionGlyphs are spread evenly over the animation's frames.
var explosionGlyphs = []glyph{
	{"**", platformcore.ColorBrightYellow},
	{"%%", platformcore.ColorOrange},
	{"++", platformcore.ColorRed},
	{"..", platformcore.ColorDarkGray},
}

var startText = []string{
	"SNEK",
	"",
	"use WASD or arrow keys to move",
	"apples give you points",
	"lemons give you even more points and confuse snek!",
	"",
	"press SPACE to start/pause/unpause",
}

// glyphFor maps a tile to its on-screen look.
func glyphFor(t core.Tile) glyph {
	switch t.Type {
	case core.TileSnakeHead:
		return headGlyphs[t.Orientation]
	case core.TileExplodingBomb:
		idx := 0
		if anim, ok := t.Animation(); ok && anim.Frames > 0 {
			idx = anim.Frame * len(explosionGlyphs) / anim.Frames
		}
		return explosionGlyphs[platformcore.Clamp(idx, 0, len(explosionGlyphs)-1)]
	}
	if gl, ok := tileGlyphs[t.Type]; ok {
		return gl
	}
	return glyph{"??", platformcore.ColorBrightWhite}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderBoard(dst)

	switch {
	case g.session.IsGameOver():
		g.renderOverlay(dst, []string{
			"GAME OVER",
			"",
			fmt.Sprintf("score: %d", g.session.Score()),
			causeText(g.session.GameOverCause()),
			"",
			"press SPACE or R to restart",
		}, platformcore.ColorBrightRed)
	case !g.started:
		g.renderOverlay(dst, startText, platformcore.ColorBrightGreen)
	case g.session.IsPaused():
		g.renderOverlay(dst, []string{
			"PAUSED",
			"",
			"press SPACE or P to continue",
		}, platformcore.ColorBrightWhite)
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *platformcore.Screen) {
	hud := fmt.Sprintf(" SNEK  Score: %d  Length: %d  Level: %s",
		g.session.Score(), g.session.Snake().Len(), g.level.Name)
	dst.DrawTextColored(0, 0, hud, platformcore.ColorBrightWhite)

	if g.session.ControlsReversed() {
		flag := "REVERSED "
		dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(flag), 0, flag, platformcore.ColorBrightYellow)
	}

	dst.DrawTextColored(0, 1, strings.Repeat("─", dst.Width()), platformcore.ColorDarkGray)
}

// renderBoard draws the frame and the tile buffer.
func (g *Game) renderBoard(dst *platformcore.Screen) {
	if len(g.board) == 0 {
		return
	}
	frame := platformcore.NewRect(g.boardX-1, g.boardY-1, len(g.board[0])*cellW+2, len(g.board)+2)
	dst.DrawBox(frame, platformcore.ColorDarkGray)

	for y, row := range g.board {
		for x, t := range row {
			gl := glyphFor(t)
			dst.DrawTextColored(g.boardX+x*cellW, g.boardY+y, gl.text, gl.color)
		}
	}
}

// renderOverlay draws a framed box of centered lines. The first line is a
// title in c; the rest are plain.
func (g *Game) renderOverlay(dst *platformcore.Screen, lines []string, c platformcore.Color) {
	width := 0
	for _, line := range lines {
		width = max(width, utf8.RuneCountInString(line))
	}

	box := platformcore.CenteredRect(dst.Width(), dst.Height(), width+4, len(lines)+2)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, c)

	for i, line := range lines {
		color := platformcore.ColorWhite
		if i == 0 {
			color = c
		}
		dst.DrawTextCentered(box.Y+1+i, line, color)
	}
}

// renderTooSmall asks for a bigger terminal.
func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	grid := g.session.Grid()
	needW := grid.Width()*cellW + 2
	needH := grid.Height() + 2 + hudHeight

	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small", platformcore.ColorBrightRed)
	dst.DrawTextCentered(y+1, fmt.Sprintf("need %dx%d, have %dx%d", needW, needH, dst.Width(), dst.Height()),
		platformcore.ColorDefault)
}

// causeText describes what ended the session.
func causeText(t core.TileType) string {
	switch {
	case t == core.TileWall:
		return "snek hit a wall"
	case t == core.TileBomb, t == core.TileExplodingBomb:
		return "snek ate a bomb"
	case t.IsSnake():
		return "snek bit itself"
	default:
		return ""
	}
}
