package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"

	"github.com/broady/tensorty"
	"github.com/broady/tensorty/internal/config"
	"github.com/broady/tensorty/ir"
	"github.com/broady/tensorty/manifest"
	"github.com/broady/tensorty/sink"
)

type CLI struct {
	Config  string `help:"Config file (default: ./tensorty.toml if present)."`
	Verbose bool   `help:"Log every rendered type." short:"v"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Render  RenderCmd  `cmd:"" help:"Render descriptor type expressions."`
	Check   CheckCmd   `cmd:"" help:"Validate descriptors without rendering."`
}

// env carries what every command needs once flags and config are resolved.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

type VersionCmd struct{}

func (c *VersionCmd) Run(e *env) error {
	fmt.Fprintln(e.stdout, Version())
	return nil
}

// Input is shared by commands that read descriptors.
type Input struct {
	Manifest string   `arg:"" optional:"" help:"Manifest file (.json, .yaml, .yml or .toml)."`
	Spec     []string `help:"Inline entry such as 'tensor?name=x&rank=2&elem=float'. Repeatable." short:"s" sep:"none"`
}

// load reads the manifest file, then appends inline specs.
func (in Input) load() (*manifest.Manifest, error) {
	if in.Manifest == "" && len(in.Spec) == 0 {
		return nil, errors.WithHint(errors.New("no descriptors given"),
			"pass a manifest file or at least one --spec")
	}
	m := &manifest.Manifest{}
	if in.Manifest != "" {
		loaded, err := manifest.Load(in.Manifest)
		if err != nil {
			return nil, err
		}
		m = loaded
	}
	specs, err := manifest.ParseSpecs(in.Spec)
	if err != nil {
		return nil, err
	}
	m.Types = append(m.Types, specs.Types...)
	return m, nil
}

type RenderCmd struct {
	Input `embed:""`

	Backend string `help:"Tensor backend token (default from config: B)." short:"b"`
	Format  string `help:"Listing format: text or json (default from config)." short:"f"`
	Out     string `help:"Write the listing into this directory instead of stdout." short:"o"`
	Output  string `help:"Listing file name inside --out (default from config)."`
	Strict  bool   `help:"Fail on naming warnings."`

	NoOverwrite bool `help:"With --out, fail instead of replacing an existing listing."`
}

func (c *RenderCmd) Run(e *env) error {
	if c.NoOverwrite && c.Out == "" {
		return errors.WithHint(errors.New("--no-overwrite requires --out"),
			"listings printed to stdout are never overwritten")
	}
	m, err := c.load()
	if err != nil {
		return err
	}

	g := tensorty.FromManifest(m).
		WithBackend(firstNonEmpty(c.Backend, e.cfg.Backend)).
		WithFormat(tensorty.Format(firstNonEmpty(c.Format, e.cfg.Format))).
		OutputName(firstNonEmpty(c.Output, e.cfg.Output)).
		WithLogger(e.logger)
	if c.Strict || e.cfg.Strict {
		g = g.Strict()
	}

	ctx := context.Background()
	if c.Out != "" {
		out := sink.NewFilesystemSink(c.Out)
		out.Overwrite = !c.NoOverwrite
		res, err := g.ToSink(ctx, out)
		if err != nil {
			return err
		}
		for _, f := range res.Files {
			fmt.Fprintf(e.stderr, "✓ wrote %s (%d types, %d bytes)\n", f.Path, res.TypesRendered, f.Size)
		}
		return nil
	}
	_, err = g.ToSink(ctx, sink.NewWriterSink(e.stdout))
	return err
}

type CheckCmd struct {
	Input `embed:""`

	Strict bool `help:"Fail on naming warnings."`
}

func (c *CheckCmd) Run(e *env) error {
	m, err := c.load()
	if err != nil {
		return err
	}
	types, err := m.Descriptors()
	if err != nil {
		return err
	}

	counts := make(map[ir.Kind]int)
	for _, t := range types {
		counts[t.Kind()]++
	}
	fmt.Fprintf(e.stdout, "✓ %d types: %d tensors, %d scalars, %d shapes, %d other\n",
		len(types), counts[ir.KindTensor], counts[ir.KindScalar], counts[ir.KindShape], counts[ir.KindOther])

	warnings := tensorty.CheckNames(types)
	for _, w := range warnings {
		fmt.Fprintf(e.stdout, "⚠ %s\n", w)
	}
	if len(warnings) > 0 && (c.Strict || e.cfg.Strict) {
		return fmt.Errorf("%d naming warnings", len(warnings))
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// run parses args and executes the selected command. It returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tensorty"),
		kong.Description("Render tensor program variable descriptors as Rust type expressions."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "tensorty: %v\n", err)
		return 2
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "tensorty: %v\n", err)
		return 1
	}
	level := cfg.SlogLevel()
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if err := ctx.Run(&env{cfg: cfg, logger: logger, stdout: stdout, stderr: stderr}); err != nil {
		reportError(stderr, err)
		return 1
	}
	return 0
}

// reportError prints err followed by any hints attached to it.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "tensorty: %v\n", err)
	errs := []error{err}
	var verr *manifest.ValidationError
	if errors.As(err, &verr) {
		errs = verr.Errs
	}
	seen := make(map[string]bool)
	for _, e := range errs {
		for _, hint := range errors.GetAllHints(e) {
			if seen[hint] {
				continue
			}
			seen[hint] = true
			fmt.Fprintf(w, "  hint: %s\n", strings.TrimSpace(hint))
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
