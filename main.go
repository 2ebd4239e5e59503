package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	stdnet "net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"ShapeBoard/internal/config"
	"ShapeBoard/internal/net"
	"ShapeBoard/internal/server"
	"ShapeBoard/internal/shapes"
	"ShapeBoard/internal/state"
	"ShapeBoard/internal/ui"
)

func main() {
	serve := flag.Bool("serve", false, "run a drawing server instead of the editor")
	configPath := flag.String("config", "", "config file (default $SHAPEBOARD_CONFIG or ~/.shapeboard.toml)")
	addr := flag.String("addr", "", "server mode: TCP listen address")
	wsAddr := flag.String("ws", "", "server mode: websocket listen address, empty to disable")
	dbPath := flag.String("db", "", "server mode: SQLite database, empty for memory")
	advertise := flag.Bool("advertise", false, "server mode: announce the server over mDNS")
	serverAddr := flag.String("server", "", "editor: server address (host:port or ws://host:port/ws); empty to discover")
	token := flag.String("token", "", "editor: login token")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.ListenAddr = *addr
		case "ws":
			cfg.WebsocketAddr = *wsAddr
		case "db":
			cfg.DBPath = *dbPath
		case "advertise":
			cfg.Advertise = *advertise
		case "server":
			cfg.ServerAddr = *serverAddr
		case "token":
			cfg.Token = *token
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	shapes.SetLogger(logger)
	state.SetLogger(logger)
	net.SetLogger(logger)

	if *serve {
		if err := runServer(cfg, logger); err != nil {
			logger.Error("server exited", slog.String("error", err.Error()))
			os.Exit(1)
		}
		return
	}
	runEditor(cfg, logger)
}

func runServer(cfg config.Config, logger *slog.Logger) error {
	var store server.Store = server.NewMemoryStore()
	if cfg.DBPath != "" {
		db, err := server.OpenSQLite(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		store = db
	}
	defer store.Close()

	srv := server.New(store, logger)
	ln, err := stdnet.Listen("tcp", cfg.ListenAddr)
	if err != nil {
		return err
	}
	port := ln.Addr().(*stdnet.TCPAddr).Port

	ip, err := net.GetOutgoingIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	logger.Info("drawing server ready", slog.String("connect", stdnet.JoinHostPort(ip, strconv.Itoa(port))))

	if cfg.Advertise {
		zone, err := net.Advertise(port)
		if err != nil {
			logger.Warn("mDNS advertisement failed", slog.String("error", err.Error()))
		} else {
			defer zone.Shutdown()
		}
	}

	var httpSrv *http.Server
	if cfg.WebsocketAddr != "" {
		httpSrv = &http.Server{Addr: cfg.WebsocketAddr, Handler: srv.Router()}
		go func() {
			logger.Info("websocket listener started", slog.String("addr", cfg.WebsocketAddr))
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("websocket listener", slog.String("error", err.Error()))
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if httpSrv != nil {
			httpSrv.Close()
		}
		srv.Close()
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, server.ErrServerClosed) {
		return err
	}
	return nil
}

func runEditor(cfg config.Config, logger *slog.Logger) {
	model := state.NewModel()
	connect := func() (*net.Client, error) {
		addr := cfg.ServerAddr
		if addr == "" {
			found, err := net.Discover(cfg.DiscoverTimeout)
			if err != nil {
				return nil, err
			}
			addr = found
		}
		return net.Dial(addr, net.Options{Token: cfg.Token, Timeout: cfg.RequestTimeout, Logger: logger})
	}
	ui.RunApp(ui.Options{Model: model, Config: cfg, Connect: connect, Logger: logger})
}
