package cli

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gocv.io/x/gocv"

	"skeleton-effect/internal/effect"
	"skeleton-effect/internal/imageio"
	"skeleton-effect/internal/metrics"
	"skeleton-effect/internal/params"
	"skeleton-effect/internal/plugin"
	"skeleton-effect/internal/render"
)

type renderOpts struct {
	input     string
	output    string
	overrides []string
	manifest  string
	gray      bool
	strict    bool
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Run the render callback over an image the way the host would",
		Example: `  skeleton render --in frame.png --out blurred.png --param SliderParam=2
  skeleton render --in frame.png --out out.png --manifest build/Skeleton/plugin.toml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.input, "in", "i", "", "input image")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output image")
	cmd.Flags().StringArrayVarP(&opts.overrides, "param", "p", nil, "parameter override name=value (repeatable)")
	cmd.Flags().StringVar(&opts.manifest, "manifest", "", "plugin manifest to take parameters from instead of the built-in declaration")
	cmd.Flags().BoolVar(&opts.gray, "gray", false, "load the input as a single-channel buffer")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail instead of passing the input through when the render fails")
	_ = cmd.MarkFlagRequired("in")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runRender(cmd *cobra.Command, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	p, err := loadPlugin(opts.manifest, cfg.Render.Effect)
	if err != nil {
		return err
	}

	bag, err := buildBag(p, opts.overrides)
	if err != nil {
		return err
	}

	e, ok := effect.Get(p.Effect)
	if !ok {
		return fmt.Errorf("unknown effect %q", p.Effect)
	}

	loader := imageio.NewLoader(logger)
	input, err := loader.Load(opts.input, opts.gray)
	if err != nil {
		return err
	}
	defer input.Close()

	renderer := render.NewRenderer(e, logger)
	start := time.Now()

	var output gocv.Mat
	if opts.strict {
		output, err = renderer.TryRender(input, bag)
		if err != nil {
			output.Close()
			return err
		}
	} else {
		output = renderer.Render(input, bag)
	}
	defer output.Close()
	elapsed := time.Since(start)

	if report, err := metrics.Evaluate(input, output); err == nil {
		logger.WithFields(logrus.Fields{
			"effect":        p.Effect,
			"duration":      elapsed.Round(time.Microsecond),
			"mse":           report.MSE,
			"psnr":          report.PSNR,
			"energy_before": report.EnergyBefore,
			"energy_after":  report.EnergyAfter,
		}).Info("Frame rendered")
	} else {
		logger.WithError(err).Warn("Could not evaluate render")
	}

	return loader.Save(output, opts.output)
}

// loadPlugin returns the manifest's declaration, or the built-in skeleton
// bound to effectName
func loadPlugin(manifest, effectName string) (*plugin.Plugin, error) {
	if manifest != "" {
		return plugin.LoadManifest(manifest)
	}

	p := plugin.Skeleton()
	if effectName != "" {
		p.Effect = effectName
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// buildBag starts from the declared defaults and applies name=value overrides
func buildBag(p *plugin.Plugin, overrides []string) (params.Bag, error) {
	bag := p.Defaults()
	for _, o := range overrides {
		name, val, err := params.Parse(p.Parameters, o)
		if err != nil {
			return nil, err
		}
		bag[name] = val
	}
	return bag, nil
}
