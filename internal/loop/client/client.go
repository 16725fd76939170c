// Package client runs one interactive board session: it reads pointer and
// key events, applies them to the session's board and redraws the terminal.
package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/tomz197/geobuilder/internal/board"
	appconfig "github.com/tomz197/geobuilder/internal/config"
	"github.com/tomz197/geobuilder/internal/draw"
	"github.com/tomz197/geobuilder/internal/geom"
	"github.com/tomz197/geobuilder/internal/input"
	"github.com/tomz197/geobuilder/internal/loop/config"
	"github.com/tomz197/geobuilder/internal/loop/server"
)

// Client handles rendering and input for a single connection.
type Client struct {
	hub          server.Hub
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	settings     appconfig.Settings
	styles       styles
	logger       *log.Logger
	idleLimits   bool
	idleWarn     time.Duration
	idleTimeout  time.Duration
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Settings     *appconfig.Settings // Defaults when nil
	Renderer     *lipgloss.Renderer  // lipgloss.DefaultRenderer when nil
	Logger       *log.Logger         // Discards output when nil
	IdleLimits   bool                // Warn and disconnect inactive sessions
	IdleTimeout  time.Duration       // Disconnect after this long idle; config default when zero
}

// NewClient creates a new client registered with the given hub.
func NewClient(hub server.Hub, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	settings := appconfig.DefaultSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	idleWarn, idleTimeout := config.InactivityWarnUser, config.InactivityDisconnectUser
	if opts.IdleTimeout > 0 {
		idleTimeout = opts.IdleTimeout
		idleWarn = idleTimeout * 3 / 4
	}

	handle := hub.RegisterClient(opts.Username)
	state := NewClientState(board.New(board.Options{HitRadius: settings.HitRadius}))

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		hub:          hub,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		settings:     settings,
		styles:       newStyles(renderer, settings.Palette),
		logger:       logger.With("client", handle.ID),
		idleLimits:   opts.IdleLimits,
		idleWarn:     idleWarn,
		idleTimeout:  idleTimeout,
	}
}

// Run starts the client loop. Blocks until the user quits, the input ends
// or the server shuts down.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	defer c.hub.UnregisterClient(c.handle.ID)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()
		c.updateTimers()

		if c.state.dirty {
			if err := c.drawFrame(); err != nil {
				return err
			}
			c.state.dirty = false
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads pending input and applies every event in order.
func (c *Client) processInput() {
	events := input.ReadEvents(c.inputStream)

	if len(events) > 0 {
		c.lastInput = time.Now()
		if c.state.isInactive {
			c.state.isInactive = false
			c.state.dirty = true
		}
	} else if c.idleLimits {
		idle := time.Since(c.lastInput)
		switch {
		case idle > c.idleTimeout:
			c.logger.Info("disconnecting inactive session", "idle", idle.Round(time.Second))
			c.state.Running = false
		case idle > c.idleWarn:
			c.state.isInactive = true
			c.state.dirty = true // Countdown text changes
		}
	}

	for _, ev := range events {
		c.handleEvent(ev)
	}

	if c.inputStream.Closed() {
		c.state.Running = false
	}
}

// handleEvent applies a single input event to the session.
func (c *Client) handleEvent(ev input.Event) {
	switch c.state.Screen {
	case ScreenShutdown:
		if ev.Kind == input.KindKey && isQuitKey(ev) {
			c.quit()
		}
		return
	case ScreenAbout:
		if ev.Kind == input.KindKey || ev.Kind == input.KindPointerDown {
			c.state.Screen = ScreenBoard
			c.state.dirty = true
		}
		return
	}

	switch ev.Kind {
	case input.KindKey:
		c.handleKey(ev)
	case input.KindPointerDown:
		if ev.Button != input.ButtonLeft {
			return
		}
		if action := c.toolbarAction(ev.Col-c.canvas.OffsetCol(), ev.Row-c.canvas.OffsetRow()); action != nil {
			action(c)
			return
		}
		p, ok := c.toLogical(ev)
		if !ok || c.onToolbarRow(ev) {
			return
		}
		if c.state.Board.PointerDown(p) {
			c.state.dirty = true
		}
	case input.KindPointerMove:
		p, ok := c.toLogical(ev)
		c.setCursor(p, ok)
		if ok && c.state.Board.PointerMove(p) {
			c.state.dirty = true
		}
	case input.KindPointerUp:
		if c.state.Board.PointerUp() {
			c.state.dirty = true
		}
	}
}

func (c *Client) handleKey(ev input.Event) {
	if isQuitKey(ev) {
		c.quit()
		return
	}
	switch {
	case ev.Key == input.KeyEscape:
		if c.state.Board.PointerUp() {
			c.state.dirty = true
		}
	case ev.Key == input.KeyRune && (ev.Rune == 'r' || ev.Rune == 'R'):
		c.reset()
	case ev.Key == input.KeyRune && (ev.Rune == 'a' || ev.Rune == 'A' || ev.Rune == '?'):
		c.about()
	}
}

func isQuitKey(ev input.Event) bool {
	return ev.Key == input.KeyCtrlC || (ev.Key == input.KeyRune && (ev.Rune == 'q' || ev.Rune == 'Q'))
}

func (c *Client) reset() {
	c.state.Board.Reset()
	c.state.dirty = true
	c.logger.Debug("board reset")
}

func (c *Client) about() {
	c.state.Screen = ScreenAbout
	c.state.dirty = true
}

func (c *Client) quit() {
	c.state.Running = false
}

// toLogical maps a pointer event to logical board coordinates.
func (c *Client) toLogical(ev input.Event) (geom.Point, bool) {
	return c.canvas.TerminalToLogical(ev.Col-c.canvas.OffsetCol(), ev.Row-c.canvas.OffsetRow())
}

func (c *Client) onToolbarRow(ev input.Event) bool {
	return ev.Row-c.canvas.OffsetRow() == toolbarRow
}

// setCursor records the hover position. The coordinate preview only shows
// while points are being placed, so only then does a move need a redraw.
func (c *Client) setCursor(p geom.Point, ok bool) {
	if p == c.state.cursor && ok == c.state.hasCursor {
		return
	}
	c.state.cursor = p
	c.state.hasCursor = ok
	if mode, _ := c.state.Board.Mode(); mode == board.ModePlacing {
		c.state.dirty = true
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.Screen = ScreenShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
				// Board input queued before the notice no longer applies
				input.ResetInput(c.inputStream)
				c.state.dirty = true
			}
		default:
			return
		}
	}
}

// updateTimers advances the shutdown countdown.
func (c *Client) updateTimers() {
	if c.state.Screen != ScreenShutdown {
		return
	}
	before := int(c.state.shutdownTimer)
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
		return
	}
	if int(c.state.shutdownTimer) != before {
		c.state.dirty = true
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.dirty = true
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
