package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/matzehuels/flowgraph/pkg/graphio"
)

const sampleGraphJSON = `{
  "nodes": [
    {"id": "entry", "width": 80, "height": 30},
    {"id": "loop", "label": "while x", "width": 90, "height": 30},
    {"id": "body", "width": 80, "height": 30},
    {"id": "exit", "width": 60, "height": 30}
  ],
  "edges": [
    {"from": "entry", "to": "loop"},
    {"from": "loop", "to": "body"},
    {"from": "body", "to": "loop"},
    {"from": "loop", "to": "exit"}
  ]
}`

func writeSampleGraph(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(sampleGraphJSON), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunLayout(t *testing.T) {
	input := writeSampleGraph(t)
	output := filepath.Join(filepath.Dir(input), "out.layout.json")

	ctx := withLogger(context.Background(), charmlog.New(os.Stderr))
	if err := runLayout(ctx, input, output, ""); err != nil {
		t.Fatalf("runLayout() error: %v", err)
	}

	l, err := graphio.ReadLayoutFile(output)
	if err != nil {
		t.Fatalf("output not readable: %v", err)
	}
	if len(l.Nodes) != 4 {
		t.Errorf("layout has %d nodes, want 4", len(l.Nodes))
	}
	backs := 0
	for _, e := range l.Edges {
		if e.Backedge {
			backs++
		}
	}
	if backs != 1 {
		t.Errorf("layout has %d back-edges, want 1", backs)
	}
}

func TestRunLayoutDefaultOutput(t *testing.T) {
	input := writeSampleGraph(t)
	ctx := withLogger(context.Background(), charmlog.New(os.Stderr))
	if err := runLayout(ctx, input, "", ""); err != nil {
		t.Fatalf("runLayout() error: %v", err)
	}
	want := strings.TrimSuffix(input, ".json") + ".layout.json"
	if _, err := os.Stat(want); err != nil {
		t.Errorf("default output %s not written: %v", want, err)
	}
}

func TestRunRender(t *testing.T) {
	input := writeSampleGraph(t)
	layoutPath := filepath.Join(filepath.Dir(input), "graph.layout.json")
	ctx := withLogger(context.Background(), charmlog.New(os.Stderr))
	if err := runLayout(ctx, input, layoutPath, ""); err != nil {
		t.Fatal(err)
	}

	svgPath := filepath.Join(filepath.Dir(input), "graph.svg")
	if err := runRender(ctx, layoutPath, svgPath); err != nil {
		t.Fatalf("runRender() error: %v", err)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg ") {
		t.Error("render output is not SVG")
	}
}

func TestRunDot(t *testing.T) {
	input := writeSampleGraph(t)
	dotPath := filepath.Join(filepath.Dir(input), "graph.dot")
	ctx := withLogger(context.Background(), charmlog.New(os.Stderr))
	if err := runDot(ctx, input, dotPath, false); err != nil {
		t.Fatalf("runDot() error: %v", err)
	}
	data, err := os.ReadFile(dotPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"body" -> "loop";`) {
		t.Errorf("dot output missing edge:\n%s", data)
	}
}

func TestRunAnalyze(t *testing.T) {
	input := writeSampleGraph(t)
	var out bytes.Buffer
	if err := runAnalyze(&out, input, ""); err != nil {
		t.Fatalf("runAnalyze() error: %v", err)
	}
	report := out.String()
	for _, want := range []string{
		"sources: entry",
		"sinks:   exit",
		"backedge: body -> loop",
		"cycle:   body -> loop",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestSetVersion(t *testing.T) {
	SetVersion("v1.2.3", "version: v1.2.3\ncommit: abc\nbuilt: today")
	if version != "v1.2.3" {
		t.Errorf("version = %q, want v1.2.3", version)
	}
	if !strings.Contains(details, "commit: abc") {
		t.Errorf("details = %q, missing commit line", details)
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext() should fall back to the default logger")
	}
}
