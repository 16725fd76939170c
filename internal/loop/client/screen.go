package client

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/geobuilder/internal/board"
	appconfig "github.com/tomz197/geobuilder/internal/config"
	"github.com/tomz197/geobuilder/internal/draw"
	"github.com/tomz197/geobuilder/internal/loop/config"
)

const toolbarRow = 1

// styles are the lipgloss styles of one session, bound to its renderer so
// color output matches the session's terminal.
type styles struct {
	button       lipgloss.Style
	panel        lipgloss.Style
	heading      lipgloss.Style
	intersection lipgloss.Style
	dialog       lipgloss.Style
	title        lipgloss.Style
	status       lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, p appconfig.Palette) styles {
	return styles{
		button:       r.NewStyle().Reverse(true).Padding(0, 1),
		panel:        r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		heading:      r.NewStyle().Bold(true),
		intersection: r.NewStyle().Foreground(paletteColor(p, appconfig.TagIntersection)),
		dialog:       r.NewStyle().Border(lipgloss.DoubleBorder()).Padding(1, 3),
		title:        r.NewStyle().Bold(true).Underline(true),
		status:       r.NewStyle().Faint(true),
	}
}

func paletteColor(p appconfig.Palette, tag string) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(p.Color(tag)))
}

// toolbarButton is a clickable label on the toolbar row.
type toolbarButton struct {
	label  string
	action func(*Client)
}

var toolbar = []toolbarButton{
	{"Reset", (*Client).reset},
	{"About", (*Client).about},
	{"Quit", (*Client).quit},
}

// toolbarAction returns the action of the button at the 1-based canvas
// position (col, row), or nil.
func (c *Client) toolbarAction(col, row int) func(*Client) {
	if row != toolbarRow {
		return nil
	}
	start := 2
	for _, b := range toolbar {
		width := len(b.label) + 2
		if col >= start && col < start+width {
			return b.action
		}
		start += width + 1
	}
	return nil
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.Screen != c.state.prevScreen
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	c.drawBoard()

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawBoard draws circles, points and intersections onto the canvas.
func (c *Client) drawBoard() {
	b := c.state.Board
	radius := c.settings.PointRadius

	for _, circle := range b.Circles() {
		if circle.Degenerate() {
			// Covered by the disc of its center point
			continue
		}
		c.canvas.DrawCircle(circle.Center, circle.Radius, c.color(circle.Color))
	}
	pointColor := c.color(appconfig.TagPoint)
	for _, p := range b.Points() {
		c.canvas.DrawDisc(p, radius, pointColor)
	}
	intersectionColor := c.color(appconfig.TagIntersection)
	for _, p := range b.Intersections() {
		c.canvas.DrawDisc(p, radius, intersectionColor)
	}
}

func (c *Client) color(tag string) draw.Color {
	return draw.ANSI(c.settings.Palette.Color(tag))
}

// writeText writes s at the 1-based canvas position and marks the cells it
// covers so the next frame erases it.
func (c *Client) writeText(col, row int, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() || col > c.canvas.TerminalWidth() {
		return
	}
	if col < 1 {
		col = 1
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.Touch(col, row, lipgloss.Width(s))
}

// writeBlock writes a multi-line block with its top-left corner at (col, row).
func (c *Client) writeBlock(col, row int, block string) {
	for i, line := range strings.Split(block, "\n") {
		c.writeText(col, row+i, line)
	}
}

// writeCentered writes a block centered on the canvas.
func (c *Client) writeCentered(block string) {
	col := (c.canvas.TerminalWidth()-lipgloss.Width(block))/2 + 1
	row := (c.canvas.TerminalHeight()-lipgloss.Height(block))/2 + 1
	c.writeBlock(col, row, block)
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	switch {
	case c.state.Screen == ScreenShutdown:
		c.drawShutdownScreen()
		return
	case c.state.isInactive:
		c.drawInactivityScreen()
		return
	}

	c.drawToolbar()
	c.drawLabels()
	c.drawInfoPanel()
	c.drawPreview()
	c.drawStatus()

	if c.state.Screen == ScreenAbout {
		c.drawAboutDialog()
	}
}

func (c *Client) drawToolbar() {
	col := 2
	for _, b := range toolbar {
		c.writeText(col, toolbarRow, c.styles.button.Render(b.label))
		col += len(b.label) + 3
	}
}

// drawLabels writes the point letters next to their points.
func (c *Client) drawLabels() {
	for i, p := range c.state.Board.Points() {
		col, row := c.canvas.LogicalToTerminal(p.X, p.Y)
		if row == toolbarRow {
			continue
		}
		c.writeText(col+2, row, board.Label(i))
	}
}

// drawInfoPanel draws the point and intersection coordinates in the top
// right corner.
func (c *Client) drawInfoPanel() {
	lines := c.state.Board.Info()
	if len(lines) == 0 {
		return
	}

	styled := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.HasSuffix(line, ":"):
			styled[i] = c.styles.heading.Render(line)
		case strings.HasPrefix(line, "Intersection "):
			styled[i] = c.styles.intersection.Render(line)
		default:
			styled[i] = line
		}
	}

	block := c.styles.panel.Render(lipgloss.JoinVertical(lipgloss.Left, styled...))
	col := c.canvas.TerminalWidth() - lipgloss.Width(block)
	c.writeBlock(col, toolbarRow+1, block)
}

// drawPreview shows the pointer coordinates next to the cursor while
// points are being placed.
func (c *Client) drawPreview() {
	if !c.state.hasCursor || c.state.Screen != ScreenBoard {
		return
	}
	if mode, _ := c.state.Board.Mode(); mode != board.ModePlacing {
		return
	}
	p := c.state.cursor
	col, row := c.canvas.LogicalToTerminal(p.X, p.Y)
	text := fmt.Sprintf("(%.0f, %.0f)", p.X, p.Y)
	if col+2+len(text) > c.canvas.TerminalWidth() {
		col -= len(text) + 2
	} else {
		col += 2
	}
	c.writeText(col, row+1, text)
}

func (c *Client) drawStatus() {
	b := c.state.Board
	mode, idx := b.Mode()

	var state string
	switch mode {
	case board.ModePlacing:
		state = fmt.Sprintf("Click to place point %s (%d/%d)", board.Label(len(b.Points())), len(b.Points()), config.MaxPoints)
	case board.ModeDragging:
		state = fmt.Sprintf("Dragging point %s", board.Label(idx))
	default:
		state = "Drag a point to move it"
	}

	text := fmt.Sprintf("%-40s Sessions: %-4d R reset  A about  Q quit", state, c.hub.Sessions())
	c.writeText(2, c.canvas.TerminalHeight(), c.styles.status.Render(text))
}

func (c *Client) drawAboutDialog() {
	lines := []string{
		c.styles.title.Render("Geometry Builder"),
		"",
		"Instructions:",
		"1. Click to select 4 points.",
		"2. Move points to see live updates.",
		"3. Click \"Reset\" to start over.",
		"",
		"A and B define the first circle (center A, through B),",
		"C and D the second. Red marks their intersections.",
		"",
		c.styles.status.Render("Press any key to close"),
	}
	c.writeCentered(c.styles.dialog.Render(strings.Join(lines, "\n")))
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	remaining := int(math.Ceil((c.idleTimeout - time.Since(c.lastInput)).Seconds()))
	lines := []string{
		c.styles.title.Render("INACTIVITY WARNING"),
		"",
		fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", max(remaining, 0)),
		"",
		"Press any key to continue",
	}
	c.writeCentered(c.styles.dialog.Render(strings.Join(lines, "\n")))
}

// drawShutdownScreen draws the server shutdown notice.
func (c *Client) drawShutdownScreen() {
	lines := []string{
		c.styles.title.Render("SERVER SHUTTING DOWN"),
		"",
		fmt.Sprintf("Disconnecting in %d seconds.", int(math.Ceil(c.state.shutdownTimer))),
	}
	c.writeCentered(c.styles.dialog.Render(strings.Join(lines, "\n")))
}
