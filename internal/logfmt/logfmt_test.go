package logfmt_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"

	"apexlog/internal/diag"
	"apexlog/internal/limits"
	"apexlog/internal/logfmt"
	"apexlog/internal/tree"
)

// Цвета в тестах всегда выключены, иначе ожидания зависят от терминала.
func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func ev(name string, ts, total, self int64) *tree.Event {
	e := &tree.Event{
		TypeName:  name,
		Timestamp: ts,
		ExitStamp: tree.NoStamp,
		LineRef:   tree.NoLine,
		Namespace: tree.DefaultNamespace,
	}
	if total > 0 {
		e.ExitStamp = ts + total
	}
	e.Duration = tree.Pair{Self: self, Total: total}
	return e
}

// sampleTrace is the fixture most render tests share: a root with one
// method (holding a debug line) and one query.
func sampleTrace() *tree.Trace {
	tr := tree.NewTrace()

	root := ev("EXECUTION_STARTED", 0, 100_000_000, 69_500_000)

	method := ev("METHOD_ENTRY", 10_000_000, 30_000_000, 29_000_000)
	method.Text = "Foo.bar()"
	debug := ev("USER_DEBUG", 20_000_000, 1_000_000, 1_000_000)
	debug.Text = "hello"

	query := ev("SOQL_EXECUTE_BEGIN", 50_000_000, 500_000, 500_000)
	query.Text = "SELECT Id FROM Account"
	query.SOQLCount = tree.Pair{Self: 1, Total: 1}
	query.QueryRows = tree.Pair{Self: 5, Total: 5}

	method.AddChild(debug)
	root.AddChild(method)
	root.AddChild(query)
	tr.AddRoot(root)
	return tr
}

func TestTreeGuides(t *testing.T) {
	var buf bytes.Buffer
	logfmt.Tree(&buf, sampleTrace(), logfmt.PrettyOpts{})

	want := strings.Join([]string{
		"EXECUTION_STARTED  100.000ms (self 69.500ms)",
		"├─ Foo.bar()  30.000ms (self 29.000ms)",
		"│  └─ hello  1.000ms (self 1.000ms)",
		"└─ SELECT Id FROM Account  500.000µs (self 500.000µs)  soql=1 rows=5",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("tree output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestTreeMinDurationHidesFastSubtrees(t *testing.T) {
	var buf bytes.Buffer
	logfmt.Tree(&buf, sampleTrace(), logfmt.PrettyOpts{MinDuration: 1_000_000})

	got := buf.String()
	if strings.Contains(got, "SELECT") {
		t.Errorf("500µs query should be hidden at 1ms threshold:\n%s", got)
	}
	if !strings.Contains(got, "Foo.bar()") {
		t.Errorf("30ms method should survive the threshold:\n%s", got)
	}
}

func TestTreeMaxDepthCutsChildren(t *testing.T) {
	var buf bytes.Buffer
	logfmt.Tree(&buf, sampleTrace(), logfmt.PrettyOpts{MaxDepth: 1})

	got := strings.TrimRight(buf.String(), "\n")
	if strings.Contains(got, "\n") {
		t.Errorf("depth 1 must render the root only:\n%s", got)
	}
	if !strings.Contains(got, "EXECUTION_STARTED") {
		t.Errorf("root missing:\n%s", got)
	}
}

func TestTreeHideCategories(t *testing.T) {
	var buf bytes.Buffer
	logfmt.Tree(&buf, sampleTrace(), logfmt.PrettyOpts{HideCategories: []string{"Debug"}})

	got := buf.String()
	if strings.Contains(got, "hello") {
		t.Errorf("debug events should be hidden:\n%s", got)
	}
	if !strings.Contains(got, "Foo.bar()") {
		t.Errorf("method events should stay visible:\n%s", got)
	}
}

func TestIssuesRendersKindsAndParseErrors(t *testing.T) {
	tr := sampleTrace()
	tr.Issues.Raise(1_500_000, diag.UnexpectedEnd, "entry never exited", diag.KindUnexpected)
	tr.Issues.Raise(0, diag.SkippedLines, "*** Skipped 10 bytes", diag.KindSkip)
	tr.AddParseError("unsupported log event: BOGUS_EVENT")

	var buf bytes.Buffer
	logfmt.Issues(&buf, tr, logfmt.PrettyOpts{})

	want := strings.Join([]string{
		"UNEXPECTED 1.500ms Unexpected-End: entry never exited",
		"SKIP       0ns Skipped-Lines: *** Skipped 10 bytes",
		"parse errors:",
		"  unsupported log event: BOGUS_EVENT",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("issue output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestIssuesEmpty(t *testing.T) {
	var buf bytes.Buffer
	logfmt.Issues(&buf, sampleTrace(), logfmt.PrettyOpts{})
	if got := buf.String(); got != "no issues\n" {
		t.Errorf("got %q, want %q", got, "no issues\n")
	}
}

func TestIssuesMaxBoundsList(t *testing.T) {
	tr := sampleTrace()
	tr.Issues.Raise(10, diag.UnexpectedExit, "one", diag.KindUnexpected)
	tr.Issues.Raise(20, diag.UnexpectedEnd, "two", diag.KindUnexpected)

	var buf bytes.Buffer
	logfmt.Issues(&buf, tr, logfmt.PrettyOpts{MaxIssues: 1})

	got := buf.String()
	if !strings.Contains(got, "one") || strings.Contains(got, "two") {
		t.Errorf("MaxIssues=1 should keep the first issue only:\n%s", got)
	}
}

func TestLimitsMarksNearlyExhausted(t *testing.T) {
	tr := sampleTrace()
	tr.MergedUsage[limits.SOQLQueries] = limits.Value{Used: 95, Limit: 100}
	tr.MergedUsage[limits.CPUTime] = limits.Value{Used: 20, Limit: 10_000}

	var buf bytes.Buffer
	logfmt.Limits(&buf, tr)

	got := buf.String()
	if !strings.Contains(got, "governor limits (all namespaces):") {
		t.Errorf("missing header:\n%s", got)
	}
	if !strings.Contains(got, "SOQL queries") || !strings.Contains(got, "CPU time (ms)") {
		t.Errorf("missing resource rows:\n%s", got)
	}
	if n := strings.Count(got, "(>90%)"); n != 1 {
		t.Errorf("got %d exhaustion marks, want 1:\n%s", n, got)
	}
}

func TestLimitsPerNamespaceBlocks(t *testing.T) {
	tr := sampleTrace()
	var a, b limits.Usage
	a[limits.SOQLQueries] = limits.Value{Used: 3, Limit: 100}
	b[limits.SOQLQueries] = limits.Value{Used: 2, Limit: 100}
	tr.Usage.Record(10, "default", a)
	tr.Usage.Record(20, "pkg", b)
	tr.MergedUsage = tr.Usage.Merge()

	var buf bytes.Buffer
	logfmt.Limits(&buf, tr)

	got := buf.String()
	for _, header := range []string{"namespace default:", "namespace pkg:"} {
		if !strings.Contains(got, header) {
			t.Errorf("missing %q:\n%s", header, got)
		}
	}
}

func TestSummaryOverview(t *testing.T) {
	tr := sampleTrace()
	tr.Size = 2048
	tr.AddNamespace("default")
	// Summary читает агрегаты с корней, как после свёртки.
	tr.Children[0].SOQLCount = tree.Pair{Total: 1}
	tr.Children[0].QueryRows = tree.Pair{Total: 5}
	tr.Children[0].ThrownCount = 1

	var buf bytes.Buffer
	logfmt.Summary(&buf, "debug.log", tr)

	got := buf.String()
	for _, part := range []string{
		"debug.log",
		"duration     100.000ms",
		"size         2,048 bytes",
		"events       4",
		"max depth    3",
		"soql         1 queries, 5 rows",
		"exceptions   1",
		"namespaces   default",
		"issues       0 (+0 parse errors)",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("summary missing %q:\n%s", part, got)
		}
	}
	if strings.Contains(got, "truncated") {
		t.Errorf("clean trace must not report truncation:\n%s", got)
	}
}

func TestJSONExport(t *testing.T) {
	tr := sampleTrace()
	tr.Size = 2048
	tr.Children[0].RawLine = "raw-root-line"

	var buf bytes.Buffer
	if err := logfmt.JSON(&buf, "debug.log", tr, logfmt.JSONOpts{}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var got logfmt.TraceJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("round trip: %v", err)
	}

	if got.Name != "debug.log" || got.Size != 2048 {
		t.Errorf("header fields: %+v", got)
	}
	if got.EventCount != 4 || got.MaxDepth != 3 {
		t.Errorf("counts: events=%d depth=%d", got.EventCount, got.MaxDepth)
	}
	if len(got.Events) != 1 || len(got.Events[0].Children) != 2 {
		t.Fatalf("tree shape lost: %+v", got.Events)
	}
	root := got.Events[0]
	if root.Raw != "" {
		t.Errorf("raw line exported without IncludeRaw: %q", root.Raw)
	}
	if root.ExitStamp == nil || *root.ExitStamp != 100_000_000 {
		t.Errorf("root exit stamp: %v", root.ExitStamp)
	}
	if root.Category != "system" {
		t.Errorf("root category: %q", root.Category)
	}
	if root.SOQL != nil {
		t.Errorf("zero counters must be omitted: %+v", root.SOQL)
	}
	query := root.Children[1]
	if query.SOQL == nil || query.SOQL.Total != 1 {
		t.Errorf("query counter lost: %+v", query.SOQL)
	}
	if query.QueryRows == nil || query.QueryRows.Total != 5 {
		t.Errorf("query rows lost: %+v", query.QueryRows)
	}
	if got.TruncationTime != nil {
		t.Errorf("clean trace has truncation time: %v", got.TruncationTime)
	}
}

func TestJSONIncludeRaw(t *testing.T) {
	tr := sampleTrace()
	tr.Children[0].RawLine = "raw-root-line"

	var buf bytes.Buffer
	if err := logfmt.JSON(&buf, "", tr, logfmt.JSONOpts{IncludeRaw: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var got logfmt.TraceJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("round trip: %v", err)
	}
	if got.Events[0].Raw != "raw-root-line" {
		t.Errorf("raw line missing: %+v", got.Events[0])
	}
}

func TestChromeExport(t *testing.T) {
	tr := sampleTrace()
	tr.Issues.Raise(1_500_000, diag.UnexpectedEnd, "entry never exited", diag.KindUnexpected)

	var buf bytes.Buffer
	if err := logfmt.Chrome(&buf, "debug.log", tr); err != nil {
		t.Fatalf("Chrome: %v", err)
	}
	var got struct {
		TraceEvents     []logfmt.TraceEvent `json:"traceEvents"`
		DisplayTimeUnit string              `json:"displayTimeUnit"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("round trip: %v", err)
	}

	if got.DisplayTimeUnit != "ms" {
		t.Errorf("display unit: %q", got.DisplayTimeUnit)
	}
	// метадата, 4 события, 1 instant-маркер
	if len(got.TraceEvents) != 6 {
		t.Fatalf("got %d trace events, want 6", len(got.TraceEvents))
	}
	meta := got.TraceEvents[0]
	if meta.Phase != "M" || meta.Name != "process_name" {
		t.Errorf("metadata event: %+v", meta)
	}
	root := got.TraceEvents[1]
	if root.Phase != "X" || root.Name != "EXECUTION_STARTED" {
		t.Errorf("root event: %+v", root)
	}
	if root.Timestamp != 0 || root.Duration != 100_000 {
		t.Errorf("root timing not in microseconds: ts=%d dur=%d", root.Timestamp, root.Duration)
	}
	if root.Category != "system" {
		t.Errorf("root category: %q", root.Category)
	}
	method := got.TraceEvents[2]
	if method.Name != "Foo.bar()" || method.Timestamp != 10_000 {
		t.Errorf("method event: %+v", method)
	}
	last := got.TraceEvents[len(got.TraceEvents)-1]
	if last.Phase != "i" || last.Category != "issue" || last.Timestamp != 1_500 {
		t.Errorf("issue marker: %+v", last)
	}
}

func TestFoldedStacks(t *testing.T) {
	tr := tree.NewTrace()
	root := ev("EXECUTION_STARTED", 0, 100_000_000, 40_000_000)
	m1 := ev("METHOD_ENTRY", 10_000_000, 30_000_000, 30_000_000)
	m1.Text = "Foo.bar()"
	m2 := ev("METHOD_ENTRY", 60_000_000, 30_000_000, 30_000_000)
	m2.Text = "Foo.bar()"
	root.AddChild(m1)
	root.AddChild(m2)
	tr.AddRoot(root)

	var buf bytes.Buffer
	if err := logfmt.Folded(&buf, tr); err != nil {
		t.Fatalf("Folded: %v", err)
	}

	want := strings.Join([]string{
		"EXECUTION_STARTED 40000000",
		"EXECUTION_STARTED;Foo.bar() 60000000",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("folded output mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestFoldedEscapesFrameSeparator(t *testing.T) {
	tr := tree.NewTrace()
	root := ev("EXECUTION_STARTED", 0, 1_000_000, 1_000_000)
	root.Text = "weird;name"
	tr.AddRoot(root)

	var buf bytes.Buffer
	if err := logfmt.Folded(&buf, tr); err != nil {
		t.Fatalf("Folded: %v", err)
	}
	if got := buf.String(); got != "weird,name 1000000\n" {
		t.Errorf("separator not escaped: %q", got)
	}
}
