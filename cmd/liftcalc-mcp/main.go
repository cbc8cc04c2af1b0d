// Command liftcalc-mcp serves the liftcalc tools over MCP stdio.
//
// By default sessions are kept in a local SQLite set log. With -server the
// binary forwards session tools to a running liftcalc HTTP server instead.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claude/liftcalc/internal/mcp"
	"github.com/claude/liftcalc/internal/session"
	"github.com/claude/liftcalc/internal/setlog"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	stateDir := flag.String("state-dir", defaultStateDir(), "directory holding the local set log")
	serverURL := flag.String("server", "", "liftcalc server URL for remote mode (e.g. https://liftcalc.tail1234.ts.net)")
	apiKey := flag.String("api-key", os.Getenv("LIFTCALC_AUTH_API_KEY"), "API key for remote writes")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("liftcalc-mcp", Version)
		return
	}

	// stdout carries the protocol
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var source mcp.SessionSource
	if *serverURL != "" {
		source = mcp.NewHTTPClient(*serverURL, *apiKey)
		log.Info("remote mode", "server", *serverURL)
	} else {
		if err := os.MkdirAll(*stateDir, 0o700); err != nil {
			log.Error("creating state dir", "dir", *stateDir, "error", err)
			os.Exit(1)
		}
		db, err := setlog.Open(*stateDir)
		if err != nil {
			log.Error("opening set log", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		source = mcp.NewLocalSource(session.NewRegistry(db, log))
		log.Info("local mode", "state_dir", *stateDir)
	}

	s := mcp.New(source, Version, log)
	if err := server.ServeStdio(s); err != nil {
		log.Error("stdio server stopped", "error", err)
		os.Exit(1)
	}
}

func defaultStateDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".liftcalc"
	}
	return filepath.Join(dir, "liftcalc")
}
