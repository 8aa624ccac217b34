package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/fitquest/internal/app"
	"github.com/meltforce/fitquest/internal/config"
	fitmcp "github.com/meltforce/fitquest/internal/mcp"
	"github.com/meltforce/fitquest/internal/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	webDir := flag.String("web", "", "directory with the built frontend to serve")
	mcpStdio := flag.Bool("mcp-stdio", false, "serve MCP over stdin/stdout instead of HTTP")
	remote := flag.String("server", "", "with -mcp-stdio, read data from this FitQuest server instead of local storage")
	flag.Parse()

	if *mcpStdio {
		os.Exit(runStdio(*configPath, *remote))
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("FitQuest starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Opening a backend applies its migrations
	if *migrateOnly {
		b, err := app.OpenBackend(ctx, cfg.Storage, cfg.Database, log)
		if err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		b.Close()
		log.Info("migrate-only: exiting")
		return
	}

	a, err := app.Open(ctx, cfg.Storage, cfg.Database, log)
	if err != nil {
		log.Error("failed to open storage", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	srv := server.New(a, cfg.Auth.APIKey, log)
	if cfg.Auth.APIKey == "" {
		log.Warn("no API key configured, backup and reset endpoints are open")
	}

	mcpSrv := fitmcp.New(fitmcp.NewLocal(a), Version, log)
	srv.SetMCP(mcpserver.NewStreamableHTTPServer(mcpSrv))

	if *webDir != "" {
		srv.SetFrontend(os.DirFS(*webDir))
		log.Info("serving frontend", "dir", *webDir)
	}

	// Start server on tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			log.Error("tsnet local client failed", "error", err)
			os.Exit(1)
		}
		srv.SetTailscale(lc)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "local (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// runStdio serves MCP on stdin/stdout. Stdout carries the protocol, so logs
// go to stderr.
func runStdio(configPath, remote string) int {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	var ds fitmcp.DataSource
	if remote != "" {
		ds = fitmcp.NewHTTPClient(remote)
		log.Info("mcp stdio using remote server", "url", remote)
	} else {
		cfg, err := config.Load(configPath)
		if err != nil {
			log.Error("failed to load config", "error", err)
			return 1
		}
		a, err := app.Open(context.Background(), cfg.Storage, cfg.Database, log)
		if err != nil {
			log.Error("failed to open storage", "error", err)
			return 1
		}
		defer a.Close()
		ds = fitmcp.NewLocal(a)
	}

	if err := mcpserver.ServeStdio(fitmcp.New(ds, Version, log)); err != nil {
		log.Error("mcp stdio error", "error", err)
		return 1
	}
	return 0
}
