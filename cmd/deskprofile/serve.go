package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/micro-nova/deskprofile/internal/api"
	"github.com/micro-nova/deskprofile/internal/auth"
	"github.com/micro-nova/deskprofile/internal/config"
	"github.com/micro-nova/deskprofile/internal/identity"
	"github.com/micro-nova/deskprofile/internal/maintenance"
	"github.com/micro-nova/deskprofile/internal/zeroconf"
)

var listenArg string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(false)
		if err != nil {
			return err
		}
		defer a.Close()
		return serve(cmd.Context(), a)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenArg, "listen", "", "HTTP listen address (default from settings, 127.0.0.1:7420)")
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context, a *app) error {
	addr := a.settings.Listen
	if listenArg != "" {
		addr = listenArg
	}

	// Graceful shutdown context
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Reload when profiles.json is edited by another process (or another
	// deskprofile invocation).
	watcher, err := config.NewWatcher(a.store.Path(), func() {
		if err := a.ctrl.Reload(); err != nil {
			slog.Warn("profiles file changed but could not be reloaded", "err", err)
		}
	})
	if err != nil {
		slog.Warn("profile file watcher unavailable", "err", err)
	} else {
		defer watcher.Close()
	}

	// Auth service
	authSvc, err := auth.NewService(a.settingsPath)
	if err != nil {
		return err
	}
	defer authSvc.Close()
	if authSvc.IsOpenMode() && !isLoopback(addr) {
		slog.Warn("listening on a non-loopback address without api_key", "addr", addr)
	}

	// Daily backups
	maint := maintenance.New(a.dataDir, a.settings.Backup.KeepDays)
	if a.settings.Backup.Enabled {
		go maint.Start(ctx)
	}

	// Zeroconf mDNS registration
	if a.settings.MDNS {
		zc := zeroconf.New(identity.GetHostname(), listenPort(addr), identity.GetVersion())
		go func() {
			if err := zc.Start(ctx); err != nil {
				slog.Warn("zeroconf failed", "err", err)
			}
		}()
	}

	sys := &system{app: a, maint: maint}
	router := api.NewRouter(a.ctrl, authSvc, a.bus, sys)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // 0 = no timeout (needed for SSE)
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("deskprofile listening", "addr", addr, "data_dir", a.dataDir, "version", identity.GetVersion())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
	case err := <-errCh:
		slog.Error("server error", "err", err)
		return err
	}
	slog.Info("shutting down...")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		slog.Warn("server shutdown error", "err", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// listenPort extracts the port of a listen address, defaulting to 80.
func listenPort(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 80
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 80
	}
	return port
}

func isLoopback(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
