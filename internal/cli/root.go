// Package cli implements the skeleton command-line tool.
//
// The tool stands in for the two outside parties the plugin deals with:
// the host, which calls the render callback once per frame (render), and
// the packaging tool, which receives the plugin declaration (build).
//
// # Commands
//
//   - render: run the render callback over an image file
//   - build: validate the plugin declaration and hand it to the build tool
//   - params: list the declared UI parameters
//
// Settings come from skeleton.toml (see package config); flags override it.
package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"skeleton-effect/internal/config"
)

var (
	version = "dev"
	commit  string
)

// SetVersion sets the values reported by --version, normally injected via ldflags
func SetVersion(v, c string) {
	version = v
	commit = c
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	configKey
)

func withLogger(ctx context.Context, l *logrus.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to the standard logger so commands always have one
func loggerFromContext(ctx context.Context) *logrus.Logger {
	if l, ok := ctx.Value(loggerKey).(*logrus.Logger); ok {
		return l
	}
	return logrus.StandardLogger()
}

func withConfig(ctx context.Context, c config.Config) context.Context {
	return context.WithValue(ctx, configKey, c)
}

func configFromContext(ctx context.Context) config.Config {
	if c, ok := ctx.Value(configKey).(config.Config); ok {
		return c
	}
	return config.Default()
}

// NewRootCmd assembles the command tree
func NewRootCmd() *cobra.Command {
	var (
		configPath string
		debug      bool
	)

	root := &cobra.Command{
		Use:           "skeleton",
		Short:         "Render and package the Skeleton effect plugin",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			logger := cfg.NewLogger(debug)
			logger.SetOutput(cmd.ErrOrStderr())
			logger.WithFields(logrus.Fields{
				"version": version,
				"debug":   debug,
			}).Debug("Starting skeleton")

			ctx := withConfig(withLogger(cmd.Context(), logger), cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("skeleton %s\ncommit: %s\n", version, commit))
	root.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "path to the TOML config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode with verbose logging")

	root.AddCommand(newRenderCmd())
	root.AddCommand(newBuildCmd())
	root.AddCommand(newParamsCmd())

	return root
}

// Execute runs the CLI and returns the first command error
func Execute(ctx context.Context) error {
	return execute(ctx, NewRootCmd())
}

// execute logs a failure through the logger the failing command configured,
// or the standard logger when it failed before one was set up
func execute(ctx context.Context, root *cobra.Command) error {
	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		logger := logrus.StandardLogger()
		if cmd != nil && cmd.Context() != nil {
			logger = loggerFromContext(cmd.Context())
		}
		logger.WithError(err).Error("Command failed")
	}
	return err
}
