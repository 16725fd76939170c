// Package loop runs a single local board session on the current terminal.
package loop

import (
	"bufio"
	"io"

	"github.com/charmbracelet/log"

	appconfig "github.com/tomz197/geobuilder/internal/config"
	"github.com/tomz197/geobuilder/internal/loop/client"
	"github.com/tomz197/geobuilder/internal/loop/server"
)

// Options configures a local session.
type Options struct {
	Settings *appconfig.Settings
	Logger   *log.Logger
}

// Run starts a standalone session: one board, read from r and drawn to w.
// It returns when the user quits or r ends.
func Run(r *bufio.Reader, w io.Writer, opts Options) error {
	hub := server.NewServer(opts.Logger)
	c := client.NewClient(hub, r, w, client.ClientOptions{
		Settings: opts.Settings,
		Logger:   opts.Logger,
	})
	return c.Run()
}
