package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waypoint/internal/metrics"
	"github.com/matzehuels/waypoint/pkg/errors"
	"github.com/matzehuels/waypoint/pkg/observability"
)

const testGraph = `{
  "nodes": [{"id": "A"}, {"id": "B"}, {"id": "C"}, {"id": "D"}],
  "edges": [
    {"source": "A", "target": "B", "weight": 5},
    {"source": "A", "target": "C", "weight": 1},
    {"source": "C", "target": "B", "weight": 1}
  ]
}`

func writeGraph(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// run executes the root command with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c := New(io.Discard, log.InfoLevel)
	c.SetOutput(&out)

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPathCommand(t *testing.T) {
	path := writeGraph(t, testGraph)

	out, err := run(t, "path", path, "A", "B")
	if err != nil {
		t.Fatalf("path error: %v", err)
	}
	for _, want := range []string{"distance", "2", "hops", "A", "C", "B"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPathCommandJSON(t *testing.T) {
	path := writeGraph(t, testGraph)

	tests := []struct {
		from, to string
		want     string
	}{
		{"A", "B", `{"distance":2,"path":["A","C","B"]}`},
		{"A", "A", `{"distance":0,"path":["A"]}`},
		{"A", "D", `{"distance":null,"path":[]}`},
		{"A", "missing", `{"distance":null,"path":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.from+"-"+tt.to, func(t *testing.T) {
			out, err := run(t, "path", path, tt.from, tt.to, "--json")
			if err != nil {
				t.Fatalf("path error: %v", err)
			}
			if got := strings.TrimSpace(out); got != tt.want {
				t.Errorf("output = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPathCommandUnreachable(t *testing.T) {
	out, err := run(t, "path", writeGraph(t, testGraph), "A", "D")
	if err != nil {
		t.Fatalf("path error: %v", err)
	}
	if !strings.Contains(out, "No path from A to D") {
		t.Errorf("output = %q", out)
	}
}

func TestPathCommandMalformedGraph(t *testing.T) {
	_, err := run(t, "path", writeGraph(t, `{"nodes": []}`), "A", "B")
	if !errors.Is(err, errors.ErrCodeMalformedGraph) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeMalformedGraph)
	}
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", writeGraph(t, testGraph))
	if err != nil {
		t.Fatalf("check error: %v", err)
	}
	for _, want := range []string{"valid graph", "4 nodes", "3 edges", "2 components", "1 isolated node", "D"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckCommandMissingFile(t *testing.T) {
	_, err := run(t, "check", filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestRenderCommandDOT(t *testing.T) {
	path := writeGraph(t, testGraph)
	output := filepath.Join(t.TempDir(), "route.dot")

	if _, err := run(t, "render", path, "-o", output, "--from", "A", "--to", "B"); err != nil {
		t.Fatalf("render error: %v", err)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	src := string(data)
	if !strings.HasPrefix(src, "graph G {") {
		t.Errorf("output is not DOT:\n%s", src)
	}
	if !strings.Contains(src, `"A" -- "C" [label="1", color=`) {
		t.Errorf("route edge A-C not highlighted:\n%s", src)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	path := writeGraph(t, testGraph)
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad extension", []string{"render", path, "-o", filepath.Join(dir, "g.png")}, errors.ErrCodeUnsupported},
		{"from without to", []string{"render", path, "-o", filepath.Join(dir, "g.dot"), "--from", "A"}, errors.ErrCodeMissingParam},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "waypoint") {
		t.Error("bash completion does not mention waypoint")
	}
}

func TestVersion(t *testing.T) {
	out, err := run(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "waypoint version") {
		t.Errorf("version output = %q", out)
	}
}

func TestRegisterHooks(t *testing.T) {
	defer observability.Reset()

	registerHooks(nil, nil)
	if _, ok := observability.Query().(observability.NoopQueryHooks); !ok {
		t.Error("no backends should leave the no-op hooks in place")
	}

	m := metrics.New()
	registerHooks(m, nil)
	observability.Query().OnShortestPath(context.Background(), "A", "B", 1, 1, time.Microsecond)
	if observability.HTTP() != observability.HTTPHooks(m) {
		t.Error("metrics not registered as HTTP hooks")
	}
}
