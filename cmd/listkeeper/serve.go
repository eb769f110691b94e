package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	lkserver "github.com/HendryAvila/listkeeper/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server (stdio transport)",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, cleanup, err := lkserver.New(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	logger.Info("serving",
		zap.String("backend", cfg.Backend),
		zap.String("session", cfg.SessionID),
		zap.String("version", lkserver.Version),
	)

	return serveStdio(ctx, s, os.Stdin, os.Stdout, logger)
}

// serveStdio runs the stdio transport until in reaches EOF or ctx ends.
// On shutdown in is closed, which ends the read the transport leaves
// pending when its context is cancelled.
func serveStdio(ctx context.Context, s *server.MCPServer, in io.ReadCloser, out io.Writer, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		stdio := server.NewStdioServer(s)
		stdio.SetErrorLogger(zap.NewStdLog(logger.Named("stdio")))
		err := stdio.Listen(gctx, in, out)
		if errors.Is(err, context.Canceled) || gctx.Err() != nil {
			return nil
		}
		return err
	})

	// Shutdown watcher.
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		if err := in.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
			logger.Debug("closing input", zap.Error(err))
		}
		return nil
	})

	return g.Wait()
}
