package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/HMasataka/tinyhttpd/internal/config"
	"github.com/HMasataka/tinyhttpd/internal/fsys"
	"github.com/HMasataka/tinyhttpd/internal/listener"
	"github.com/HMasataka/tinyhttpd/internal/resolver"
	"github.com/HMasataka/tinyhttpd/internal/response"
	"github.com/HMasataka/tinyhttpd/internal/server"
	"github.com/HMasataka/tinyhttpd/internal/wire"
	"github.com/fatih/color"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML config file")
	flagArgs, positional := splitArgs(args)
	if err := fs.Parse(flagArgs); err != nil {
		return 2
	}
	positional = append(positional, fs.Args()...)

	cfg, err := config.Load(*configPath)
	if err != nil {
		color.New(color.FgRed).Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	level, _ := cfg.LogLevel()
	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	port, err := config.ParsePort(positional, cfg.Server.Port)
	if err != nil {
		slog.Info("No port was specified or invalid port, using standard", slog.Int("port", port))
	}
	cfg.Server.Port = port

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, l, err := setup(cfg)
	if err != nil {
		if errors.Is(err, listener.ErrBind) {
			color.New(color.FgRed, color.Bold).Fprintln(stderr, "Unable to use specified port")
		} else {
			color.New(color.FgRed, color.Bold).Fprintln(stderr, "Unable to set up server")
		}
		fmt.Fprintln(stderr, err)
		slog.Error("failed to start server", "error", err)
		return 1
	}

	slog.Info(fmt.Sprintf("Serving HTTP on port %d ...", l.Port()),
		slog.String("root", cfg.Serve.Root),
		slog.String("strategy", cfg.Server.Strategy),
	)

	if err := srv.Serve(ctx); err != nil && !errors.Is(err, server.ErrServerClosed) {
		slog.Error("server error", "error", err)
		return 1
	}

	slog.Info("shutting down server...")
	return 0
}

// splitArgs pulls integers such as "-1" out of args so the flag package does
// not read a negative port as an unknown flag.
func splitArgs(args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-config" || arg == "--config":
			flags = append(flags, arg)
			if i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		case isInteger(arg):
			positional = append(positional, arg)
		default:
			flags = append(flags, arg)
		}
	}
	return flags, positional
}

func isInteger(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}

// setup wires the pipeline and binds the listener.
func setup(cfg config.Config) (*server.Server, *listener.Listener, error) {
	codec, err := wire.New(cfg.Serve.Encoding)
	if err != nil {
		return nil, nil, err
	}

	dir := fsys.Dir{Root: cfg.Serve.Root, Confine: cfg.Serve.Confine}
	if !dir.IsDir("") {
		return nil, nil, fmt.Errorf("serving root %q is not a directory", cfg.Serve.Root)
	}

	res := resolver.New(dir, codec, resolver.Options{
		IndexFile: cfg.Serve.IndexFile,
	})

	builderOptions := response.DefaultOptions()
	builderOptions.ServerName = cfg.Serve.ServerName
	builder := response.NewBuilder(dir, codec, builderOptions)

	handler := server.NewHandler(codec, res, builder, server.HandlerOptions{
		ReadSize:     cfg.Server.ReadSize,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	})

	l, err := listener.Open(listener.Options{
		Port:    cfg.Server.Port,
		Backlog: cfg.Server.Backlog,
	})
	if err != nil {
		return nil, nil, err
	}

	options := server.DefaultOptions()
	if cfg.Server.Strategy == config.StrategyPooled {
		options.Strategy = server.NewPooled(cfg.Workers())
	}

	return server.New(l, handler, options), l, nil
}
