package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bethropolis/tidepad/internal/app"
	"github.com/bethropolis/tidepad/internal/config"
	"github.com/bethropolis/tidepad/internal/logger"
	"github.com/bethropolis/tidepad/internal/recents"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCommand() *cobra.Command {
	flags := &config.Flags{}
	cmd := &cobra.Command{
		Use:          config.AppName + " [file or folder...]",
		Short:        "A small terminal text editor",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEditor(cmd.Context(), flags, args)
		},
	}
	flags.Define(cmd.PersistentFlags())

	cmd.AddCommand(newVersionCommand(), newRecentsCommand(flags))
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", config.AppName, version)
		},
	}
}

func newRecentsCommand(flags *config.Flags) *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "recents",
		Short: "List or clear recently opened files and folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, closeLog := loadConfig(flags)
			defer closeLog()

			store, err := app.OpenStore(cfg)
			if err != nil {
				return err
			}
			if c, ok := store.(io.Closer); ok {
				defer c.Close()
			}
			reg, err := recents.New(store, recents.Options{
				MaxEntries:  cfg.Recents.MaxEntries,
				LabelBudget: cfg.Recents.LabelBudget,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if clearAll {
				if err := reg.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(out, "recents cleared")
				return nil
			}
			printRecents(out, reg)
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "Forget all recent files and folders")
	return cmd
}

func printRecents(w io.Writer, reg *recents.Registry) {
	n := 0
	for e := range reg.List() {
		fmt.Fprintf(w, "%-4s  %s\n", e.Kind, e.Value)
		n++
	}
	if n == 0 {
		fmt.Fprintln(w, "no recent files or folders")
	}
}

func runEditor(ctx context.Context, flags *config.Flags, args []string) error {
	cfg, closeLog := loadConfig(flags)
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Infof("Starting %s %s", config.AppName, version)
	editor, err := app.New(app.Options{Config: cfg})
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		return err
	}
	defer editor.Close()

	if err := editor.Run(ctx, args); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		return err
	}
	logger.Infof("%s finished", config.AppName)
	return nil
}

// loadConfig loads the configuration and starts the logger. A broken config
// file is logged and the defaults are used.
func loadConfig(flags *config.Flags) (*config.Config, func()) {
	cfg, undecoded, err := config.Load(flags.ConfigFilePath, flags)
	closeLog := initLogger(cfg.Logger)
	if err != nil {
		logger.Warnf("Config: %v", err)
	}
	for _, key := range undecoded {
		logger.Warnf("Config: unknown key %q ignored", key)
	}
	return cfg, closeLog
}

func initLogger(cfg logger.Config) func() {
	path := cfg.LogFilePath
	switch path {
	case "-":
		logger.Init(cfg, os.Stderr)
		return func() {}
	case "":
		dir := config.DefaultDir()
		if dir == "" {
			dir = os.TempDir()
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot create %s: %v\n", dir, err)
		}
		path = filepath.Join(dir, config.DefaultLogFileName)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cannot open log file %s: %v\n", path, err)
		logger.Init(cfg, nil)
		return func() {}
	}
	logger.Init(cfg, f)
	return func() { f.Close() }
}
