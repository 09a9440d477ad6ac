package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"skeleton-effect/internal/plugin"
)

func newBuildCmd() *cobra.Command {
	var (
		output    string
		srcFolder string
		command   string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Validate the plugin declaration and hand it to the build tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			cfg := configFromContext(ctx)

			if !cmd.Flags().Changed("output") {
				output = cfg.Build.OutputFolder
			}
			if !cmd.Flags().Changed("src") {
				srcFolder = cfg.Build.SrcFolder
			}
			tool := cfg.Build.Command
			if cmd.Flags().Changed("command") {
				tool = strings.Fields(command)
			}

			p := plugin.Skeleton()
			p.Effect = cfg.Render.Effect
			if srcFolder != "" {
				if err := p.SetSrcFolder(srcFolder); err != nil {
					return err
				}
			}

			return plugin.NewManifestBuilder(tool, logger).Build(ctx, output, p)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output folder for the plugin (default from config)")
	cmd.Flags().StringVar(&srcFolder, "src", "", "plugin source folder")
	cmd.Flags().StringVar(&command, "command", "", "external build command; the manifest path is appended")

	return cmd
}
