package tensorty

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/broady/tensorty/ir"
	"github.com/broady/tensorty/manifest"
	"github.com/broady/tensorty/sink"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// TestGolden runs every testdata/*.txtar archive. The archive comment holds
// key=value options; the archive holds one manifest file and a "want" file.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no golden archives found")
	}
	for _, file := range files {
		t.Run(strings.TrimSuffix(filepath.Base(file), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			opts := parseOptions(string(ar.Comment))

			var m *manifest.Manifest
			var want []byte
			for _, f := range ar.Files {
				if f.Name == "want" {
					want = f.Data
					continue
				}
				format, err := manifest.FormatFromPath(f.Name)
				if err != nil {
					t.Fatalf("archive file %s: %v", f.Name, err)
				}
				m, err = manifest.Decode(bytes.NewReader(f.Data), format)
				if err != nil {
					t.Fatalf("decode %s: %v", f.Name, err)
				}
			}
			if m == nil || want == nil {
				t.Fatal("archive needs a manifest and a want file")
			}

			res, err := FromManifest(m).
				WithBackend(opts["backend"]).
				WithFormat(Format(opts["format"])).
				WithLogger(discard).
				Generate(context.Background())
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if got := string(res.Content); got != string(want) {
				t.Errorf("listing mismatch\n--- got ---\n%s\n--- want ---\n%s", got, want)
			}
			if res.TypesRendered != len(m.Types) {
				t.Errorf("TypesRendered = %d, want %d", res.TypesRendered, len(m.Types))
			}
		})
	}
}

func parseOptions(comment string) map[string]string {
	opts := make(map[string]string)
	for _, line := range strings.Split(comment, "\n") {
		if k, v, ok := strings.Cut(strings.TrimSpace(line), "="); ok {
			opts[k] = v
		}
	}
	return opts
}

func TestGenerator_FromTypes(t *testing.T) {
	res, err := FromTypes(
		ir.FloatTensor("3", 2),
		ir.IntTensorWithShape("x", 4, []int{1, 2, 3, 4}),
		ir.NewScalar("y", ir.ScalarFloat64),
		ir.NewShape("s", 3),
	).WithLogger(discard).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	want := "_3: Tensor<B, 2>\nx: Tensor<B, 4, Int>\ny: f64\ns: [usize; 3]\n"
	if string(res.Content) != want {
		t.Errorf("Content = %q, want %q", res.Content, want)
	}
	if len(res.Files) != 1 || res.Files[0].Path != DefaultOutput || res.Files[0].Size != int64(len(want)) {
		t.Errorf("Files = %+v", res.Files)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
}

func TestGenerator_TypesThenManifest(t *testing.T) {
	m := &manifest.Manifest{Types: []manifest.Entry{{Kind: "shape", Name: "b", Rank: 1}}}
	g := FromManifest(m)
	g.types = []ir.Type{ir.NewScalar("a", ir.ScalarBool)}
	res, err := g.WithLogger(discard).Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got := string(res.Content); got != "a: bool\nb: [usize; 1]\n" {
		t.Errorf("Content = %q", got)
	}
}

func TestGenerator_Warnings(t *testing.T) {
	types := []ir.Type{
		ir.FloatTensor("x", 1),
		ir.NewScalar("x", ir.ScalarInt64),
		ir.NewShape("type", 2),
	}

	res, err := FromTypes(types...).WithLogger(discard).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	var codes []string
	for _, w := range res.Warnings {
		codes = append(codes, w.Code)
	}
	if got := strings.Join(codes, ","); got != WarnDuplicateName+","+ir.WarnReservedWord {
		t.Errorf("warning codes = %s", got)
	}

	_, err = FromTypes(types...).Strict().WithLogger(discard).Generate(context.Background())
	if err == nil || !strings.Contains(err.Error(), "strict mode") {
		t.Errorf("Strict Generate() = %v, want strict mode error", err)
	}
}

func TestGenerator_LogsWarnings(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := FromTypes(ir.NewOther("fn", "Foo")).WithLogger(logger).Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"code=RESERVED_WORD", "msg=\"rendered type\"", "type=Foo", "msg=\"wrote type listing\""} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerator_InvalidManifest(t *testing.T) {
	m := &manifest.Manifest{Types: []manifest.Entry{{Kind: "tensor", Name: "t", Elem: "float"}}}
	_, err := FromManifest(m).WithLogger(discard).Generate(context.Background())
	if err == nil || !strings.Contains(err.Error(), "rank") {
		t.Errorf("Generate() = %v, want rank error", err)
	}
}

func TestGenerator_UnknownFormat(t *testing.T) {
	_, err := FromTypes(ir.NewShape("s", 1)).WithFormat("xml").WithLogger(discard).Generate(context.Background())
	if err == nil {
		t.Error("Generate() succeeded with unknown format")
	}
}

func TestGenerator_ToSink(t *testing.T) {
	mem := sink.NewMemorySink()
	_, err := FromTypes(ir.BoolTensor("m", 2)).
		OutputName("model/forward.txt").
		WithLogger(discard).
		ToSink(context.Background(), mem)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(mem.Get("model/forward.txt")); got != "m: Tensor<B, 2, Bool>\n" {
		t.Errorf("sink content = %q", got)
	}

	_, err = FromTypes(ir.BoolTensor("m", 2)).OutputName("../escape.txt").WithLogger(discard).ToSink(context.Background(), mem)
	if err == nil {
		t.Error("ToSink() accepted a traversal path")
	}
}

func TestGenerator_ToDir(t *testing.T) {
	dir := t.TempDir()
	res, err := FromTypes(ir.NewScalar("lr", ir.ScalarFloat64)).
		WithFormat(FormatJSON).
		OutputName("types.json").
		WithLogger(discard).
		ToDir(context.Background(), dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(filepath.Join(dir, "types.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, res.Content) {
		t.Errorf("file content differs from Result.Content")
	}
	if !strings.Contains(string(got), `"type": "f64"`) {
		t.Errorf("JSON listing = %s", got)
	}

	if _, err := FromTypes().ToDir(context.Background(), ""); err == nil {
		t.Error("ToDir(\"\") succeeded, want error")
	}
}

func TestGenerator_Empty(t *testing.T) {
	res, err := FromTypes().WithFormat(FormatJSON).WithLogger(discard).Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if string(res.Content) != "[]\n" {
		t.Errorf("Content = %q, want %q", res.Content, "[]\n")
	}
}
