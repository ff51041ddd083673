package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/micro-nova/deskprofile/internal/config"
	"github.com/micro-nova/deskprofile/internal/controller"
	"github.com/micro-nova/deskprofile/internal/events"
	"github.com/micro-nova/deskprofile/internal/helper"
	"github.com/micro-nova/deskprofile/internal/logging"
	"github.com/micro-nova/deskprofile/internal/platform"
)

var (
	configPath string
	dataDirArg string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "deskprofile [command]",
	Short: "Save and restore display and audio profiles",
	Long: `deskprofile captures the current monitor arrangement and audio devices into
named profiles and applies them again with one command. On macOS it drives
displayplacer, SwitchAudioSource and osascript; on Windows nircmd and PowerShell.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Ctrl-C cancels the command's context, which
// stops any running helper process.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "settings file (default: <data-dir>/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDirArg, "data-dir", "", "data directory (default: user config dir/deskprofile)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// app is everything a subcommand needs, wired from the flags and settings.
type app struct {
	dataDir      string
	settingsPath string
	settings     config.Settings
	store        *config.JSONStore
	bus          *events.Bus
	ctrl         *controller.Controller
	logCloser    io.Closer
}

// newApp resolves the data dir, loads settings, sets up logging and builds
// the controller. quiet keeps informational logs off the terminal for the
// one-shot commands.
func newApp(quiet bool) (*app, error) {
	dataDir, err := config.ResolveDataDir(dataDirArg)
	if err != nil {
		return nil, err
	}

	settingsPath := configPath
	if settingsPath == "" {
		settingsPath = config.SettingsPath(dataDir)
	}
	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}

	closer, err := logging.Setup(logging.Options{
		Debug: debug,
		Quiet: quiet,
		File:  settings.LogFile,
		Dir:   dataDir,
	})
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}

	runner := helper.NewExecRunner(settings.HelperRate, settings.HelperBurst)
	displays, audio := platform.NewForHost(runner, settings.Helpers)

	store := config.NewJSONStore(dataDir)
	bus := events.NewBus()

	return &app{
		dataDir:      dataDir,
		settingsPath: settingsPath,
		settings:     settings,
		store:        store,
		bus:          bus,
		ctrl:         controller.New(store, displays, audio, bus),
		logCloser:    closer,
	}, nil
}

func (a *app) Close() {
	_ = a.logCloser.Close()
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
