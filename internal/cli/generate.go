package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/fluvia/pkg/field"
	"github.com/matzehuels/fluvia/pkg/forest"
	"github.com/matzehuels/fluvia/pkg/observability"
	"github.com/matzehuels/fluvia/pkg/pipeline"
)

// generateFlags holds the command-line flags for the generate command.
type generateFlags struct {
	config   string  // TOML parameter file
	seed     uint64  // random seed
	width    int     // grid width in cells
	height   int     // grid height in cells
	seaLevel float64 // sketch value below which cells start as water
	output   string  // output file, "-" for stdout
	samples  int     // spline samples per segment, 0 disables splines
	treesSVG string  // river tree diagram output
	treesDOT string  // river tree DOT output
	showMap  bool    // print the land-type map
	noCache  bool
	refresh  bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	flags := generateFlags{
		seed:     pipeline.DefaultSeed,
		width:    pipeline.DefaultWidth,
		height:   pipeline.DefaultHeight,
		seaLevel: pipeline.DefaultSeaLevel,
		output:   "terrain.json",
		samples:  pipeline.DefaultSamplesPerSegment,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Grow rivers and synthesize an elevation field",
		Long: `Grow rivers and synthesize an elevation field.

The coastline sketch and base elevation are synthesized from simplex noise
seeded by --seed. Parameters are read from --config (TOML) when given;
flags override file values.

Results are cached locally; set FLUVIA_REDIS_URL or FLUVIA_MONGO_URI to
share a cache between machines.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := buildOptions(cmd.Flags(), flags)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd, opts, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.config, "config", "c", "", "TOML parameter file")
	cmd.Flags().Uint64Var(&flags.seed, "seed", flags.seed, "random seed")
	cmd.Flags().IntVar(&flags.width, "width", flags.width, "grid width in cells")
	cmd.Flags().IntVar(&flags.height, "height", flags.height, "grid height in cells")
	cmd.Flags().Float64Var(&flags.seaLevel, "sea-level", flags.seaLevel, "noise value below which cells start as water")
	cmd.Flags().StringVarP(&flags.output, "output", "o", flags.output, `output file ("-" for stdout)`)
	cmd.Flags().IntVar(&flags.samples, "samples", flags.samples, "spline samples per segment (0 disables splines)")
	cmd.Flags().StringVar(&flags.treesSVG, "trees-svg", "", "write a Graphviz SVG of the river trees")
	cmd.Flags().StringVar(&flags.treesDOT, "trees-dot", "", "write the river trees as Graphviz DOT")
	cmd.Flags().BoolVar(&flags.showMap, "map", false, "print the land-type map")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "recompute even when cached")

	return cmd
}

// buildOptions loads the config file, if any, and applies explicitly set
// flags on top of it.
func buildOptions(fs *pflag.FlagSet, flags generateFlags) (pipeline.Options, error) {
	opts := pipeline.DefaultOptions()
	if flags.config != "" {
		var err error
		if opts, err = pipeline.LoadOptionsFile(flags.config); err != nil {
			return pipeline.Options{}, err
		}
	}
	if fs.Changed("seed") {
		opts.Seed = flags.seed
	}
	if fs.Changed("width") {
		opts.Width = flags.width
	}
	if fs.Changed("height") {
		opts.Height = flags.height
	}
	if fs.Changed("sea-level") {
		opts.SeaLevel = flags.seaLevel
	}
	opts.Refresh = flags.refresh
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// runGenerate executes the pipeline and writes the requested outputs.
func (c *CLI) runGenerate(cmd *cobra.Command, opts pipeline.Options, flags generateFlags) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	opts.Logger = logger

	runner, err := c.newRunner(cmd, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Generating %dx%d terrain...", opts.Width, opts.Height))
	observability.SetPipelineHooks(spinner)
	defer observability.SetPipelineHooks(observability.NoopPipelineHooks{})
	spinner.Start()

	in, err := runner.NoiseInput(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	res, err := runner.Execute(ctx, in, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return fmt.Errorf("generate: %w", err)
	}
	doc, err := pipeline.NewDocument(ctx, res, flags.samples)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return fmt.Errorf("build splines: %w", err)
	}
	spinner.Stop()
	prog.done("Generated terrain", "rivers", len(res.Rivers), "cached", res.CacheHit)

	if err := writeDocument(cmd.OutOrStdout(), flags.output, doc); err != nil {
		return err
	}
	if flags.output != "-" {
		printStats(res.Stats, res.CacheHit)
		printFile(flags.output)
		printNextStep("Browse the map", fmt.Sprintf("%s preview %s", appName, flags.output))
	}

	if flags.showMap {
		fmt.Fprint(cmd.OutOrStdout(), landMap(res.Types, res.Rivers))
	}
	return writeTrees(ctx, res.Rivers, flags.treesDOT, flags.treesSVG)
}

// writeDocument encodes doc as indented JSON to path, or to stdout for "-".
func writeDocument(stdout io.Writer, path string, doc pipeline.Document) error {
	w := stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeTrees writes the river trees as DOT and SVG when paths are given.
func writeTrees(ctx context.Context, rivers []*forest.Tree[field.Point], dotPath, svgPath string) error {
	if dotPath == "" && svgPath == "" {
		return nil
	}
	dot := forest.ToDOT(rivers, field.Point.String)
	if dotPath != "" {
		if err := os.WriteFile(dotPath, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dotPath, err)
		}
		printFile(dotPath)
	}
	if svgPath != "" {
		svg, err := forest.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render river trees: %w", err)
		}
		if err := os.WriteFile(svgPath, svg, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", svgPath, err)
		}
		printFile(svgPath)
	}
	return nil
}
