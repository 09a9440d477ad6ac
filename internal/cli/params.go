package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"skeleton-effect/internal/params"
)

func newParamsCmd() *cobra.Command {
	var manifest string

	cmd := &cobra.Command{
		Use:   "params",
		Short: "List the UI parameters the plugin declares",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := configFromContext(cmd.Context())
			p, err := loadPlugin(manifest, cfg.Render.Effect)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "NAME\tKIND\tDEFAULT\tDETAIL\n")
			for _, desc := range p.Parameters {
				fmt.Fprintf(w, "%s\t%s\t%v\t%s\n", desc.Name(), desc.Kind(), desc.Default(), detail(desc))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&manifest, "manifest", "", "plugin manifest to list instead of the built-in declaration")
	return cmd
}

func detail(desc params.Descriptor) string {
	switch d := desc.(type) {
	case *params.SliderParam:
		return fmt.Sprintf("range %g..%g step %g", d.Min, d.Max, d.Step)
	case *params.PopupParam:
		return strings.Join(d.Options, "|")
	default:
		return ""
	}
}
