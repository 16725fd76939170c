package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/geobuilder/internal/config"
	"github.com/tomz197/geobuilder/internal/loop"
)

func main() {
	os.Exit(run())
}

// run owns every deferred cleanup so main can exit with its status after
// the log file is closed.
func run() int {
	logger, closeLog, err := newLogger(config.GetEnv("GEOBUILDER_LOG", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		return 1
	}
	defer closeLog()

	settings, err := config.LoadSettings(config.GetEnv("GEOBUILDER_CONFIG", ""))
	if err != nil {
		logger.Error("failed to load settings", "err", err)
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		return 1
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Error("failed to enable raw mode", "err", err)
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		return 1
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	logger.Info("session started")
	reader := bufio.NewReader(os.Stdin)
	if err := loop.Run(reader, os.Stdout, loop.Options{Settings: &settings, Logger: logger}); err != nil {
		logger.Error("session ended", "err", err)
		return 1
	}
	logger.Info("session ended")
	return 0
}

// newLogger logs to path, or nowhere when path is empty: stderr shares the
// terminal with the board.
func newLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "builder",
		Level:           log.DebugLevel,
	})
	return logger, func() { _ = f.Close() }, nil
}
