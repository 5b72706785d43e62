// Package tensorty builds listings of rendered type expressions for the
// variables of a generated tensor program.
//
// Descriptors come from Go code (package ir) or from a manifest (package
// manifest). The generator renders each one with package rust, checks names,
// and writes the listing to a sink.
package tensorty

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/broady/tensorty/ir"
	"github.com/broady/tensorty/manifest"
	"github.com/broady/tensorty/rust"
	"github.com/broady/tensorty/sink"
)

// Format selects the listing layout.
type Format string

const (
	// FormatText writes one "name: type" line per descriptor.
	FormatText Format = "text"

	// FormatJSON writes an array of {name, kind, type, entry} objects.
	FormatJSON Format = "json"
)

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// WarnDuplicateName is reported when two descriptors share a name.
const WarnDuplicateName = "DUPLICATE_NAME"

// DefaultOutput is the listing path used when OutputName is not called.
const DefaultOutput = "types.txt"

// Generator provides a fluent API for rendering descriptor listings.
// Create with FromTypes() or FromManifest() and configure with method chaining.
//
// Example:
//
//	tensorty.FromTypes(
//	    ir.FloatTensor("input", 4),
//	    ir.NewScalar("scale", ir.ScalarFloat32),
//	).WithBackend("Wgpu").ToDir(ctx, "./out")
type Generator struct {
	types    []ir.Type
	manifest *manifest.Manifest
	backend  string
	format   Format
	output   string
	strict   bool
	logger   *slog.Logger
}

// FromTypes creates a Generator for already constructed descriptors.
func FromTypes(types ...ir.Type) *Generator {
	return &Generator{types: types}
}

// FromManifest creates a Generator for manifest entries.
// Entries are validated when the generator runs.
func FromManifest(m *manifest.Manifest) *Generator {
	return &Generator{manifest: m}
}

// WithBackend sets the tensor backend token. Default: rust.Backend.
func (g *Generator) WithBackend(token string) *Generator {
	g.backend = token
	return g
}

// WithFormat sets the listing format. Default: FormatText.
func (g *Generator) WithFormat(f Format) *Generator {
	g.format = f
	return g
}

// OutputName sets the relative path of the listing. Default: DefaultOutput.
func (g *Generator) OutputName(path string) *Generator {
	g.output = path
	return g
}

// Strict makes identifier and duplicate-name warnings fatal.
func (g *Generator) Strict() *Generator {
	g.strict = true
	return g
}

// WithLogger sets the logger. If not set, slog.Default() is used.
func (g *Generator) WithLogger(logger *slog.Logger) *Generator {
	g.logger = logger
	return g
}

// Result describes a generated listing.
type Result struct {
	// Files lists the files written to the sink.
	Files []OutputFile

	// Content is the rendered listing.
	Content []byte

	// TypesRendered is the number of descriptors in the listing.
	TypesRendered int

	// Warnings contains non-fatal naming issues.
	Warnings []ir.Warning
}

// OutputFile describes a written file.
type OutputFile struct {
	// Path is the relative path of the file.
	Path string

	// Size is the number of bytes written.
	Size int64
}

// Generate renders the listing into a MemorySink and returns it.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	return g.ToSink(ctx, sink.NewMemorySink())
}

// ToDir renders the listing and writes it below dir.
func (g *Generator) ToDir(ctx context.Context, dir string) (*Result, error) {
	if dir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	return g.ToSink(ctx, sink.NewFilesystemSink(dir))
}

// ToSink renders the listing and writes it to out.
func (g *Generator) ToSink(ctx context.Context, out sink.OutputSink) (*Result, error) {
	logger := g.logger
	if logger == nil {
		logger = slog.Default()
	}

	types, err := g.descriptors()
	if err != nil {
		return nil, err
	}

	warnings := CheckNames(types)
	for _, w := range warnings {
		logger.Warn("descriptor name", slog.String("code", w.Code), slog.String("name", w.TypeName), slog.String("message", w.Message))
	}
	if g.strict && len(warnings) > 0 {
		return nil, fmt.Errorf("strict mode: %d naming warnings, first: %s", len(warnings), warnings[0])
	}

	emitter := rust.NewEmitter(g.backend)
	var content []byte
	switch g.format {
	case "", FormatText:
		content = renderText(emitter, types)
	case FormatJSON:
		content, err = renderJSON(emitter, types)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown format %q", g.format)
	}
	for _, t := range types {
		logger.Debug("rendered type",
			slog.String("name", t.Name().String()),
			slog.String("kind", t.Kind().String()),
			slog.String("type", emitter.Render(t)))
	}

	path := g.output
	if path == "" {
		path = DefaultOutput
	}
	if err := out.WriteFile(ctx, path, content); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("wrote type listing",
		slog.String("path", path),
		slog.Int("types", len(types)),
		slog.Int("warnings", len(warnings)))

	return &Result{
		Files:         []OutputFile{{Path: path, Size: int64(len(content))}},
		Content:       content,
		TypesRendered: len(types),
		Warnings:      warnings,
	}, nil
}

func (g *Generator) descriptors() ([]ir.Type, error) {
	types := append([]ir.Type(nil), g.types...)
	if g.manifest != nil {
		fromManifest, err := g.manifest.Descriptors()
		if err != nil {
			return nil, err
		}
		types = append(types, fromManifest...)
	}
	return types, nil
}

// CheckNames reports identifier problems and duplicate names in input order.
func CheckNames(types []ir.Type) []ir.Warning {
	var warnings []ir.Warning
	seen := make(map[string]bool, len(types))
	for _, t := range types {
		name := t.Name().String()
		warnings = append(warnings, ir.CheckIdentifier(t.Name())...)
		if seen[name] {
			warnings = append(warnings, ir.Warning{
				Code:     WarnDuplicateName,
				Message:  fmt.Sprintf("%s %q reuses an earlier name", t.Kind(), name),
				TypeName: name,
			})
		}
		seen[name] = true
	}
	return warnings
}

func renderText(e rust.Emitter, types []ir.Type) []byte {
	var buf bytes.Buffer
	for _, t := range types {
		buf.WriteString(e.Field(t))
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

type listingItem struct {
	Name  string         `json:"name"`
	Kind  string         `json:"kind"`
	Type  string         `json:"type"`
	Entry manifest.Entry `json:"entry"`
}

func renderJSON(e rust.Emitter, types []ir.Type) ([]byte, error) {
	items := make([]listingItem, len(types))
	for i, t := range types {
		items[i] = listingItem{
			Name:  t.Name().String(),
			Kind:  t.Kind().String(),
			Type:  e.Render(t),
			Entry: manifest.FromType(t),
		}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Type expressions are full of angle brackets; keep them readable.
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return nil, fmt.Errorf("failed to encode listing: %w", err)
	}
	return buf.Bytes(), nil
}
