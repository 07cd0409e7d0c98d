package limits_test

import (
	"testing"

	"apexlog/internal/limits"
)

const sampleBlock = `  Number of SOQL queries: 3 out of 100
  Number of query rows: 60 out of 50000
  Number of SOSL queries: 0 out of 20
  Number of DML statements: 2 out of 150
  Number of Publish Immediate DML: 0 out of 150
  Number of DML rows: 12 out of 10000
  Maximum CPU time: 1234 out of 10000
  Maximum heap size: 0 out of 6000000
  Number of callouts: 1 out of 100
  Number of Email Invocations: 0 out of 10
  Number of future calls: 0 out of 50
  Number of queueable jobs added to the queue: 0 out of 50
  Number of Mobile Apex push calls: 0 out of 10`

func TestParseBlockReadsEveryResource(t *testing.T) {
	u, matched := limits.ParseBlock(sampleBlock)
	if matched != 13 {
		t.Fatalf("matched = %d, want 13", matched)
	}
	checks := []struct {
		res   limits.Resource
		used  int64
		limit int64
	}{
		{limits.SOQLQueries, 3, 100},
		{limits.QueryRows, 60, 50000},
		{limits.DMLStatements, 2, 150},
		{limits.DMLRows, 12, 10000},
		{limits.CPUTime, 1234, 10000},
		{limits.HeapSize, 0, 6000000},
		{limits.Callouts, 1, 100},
	}
	for _, c := range checks {
		got := u[c.res]
		if got.Used != c.used || got.Limit != c.limit {
			t.Errorf("%s = %+v, want used %d limit %d", c.res, got, c.used, c.limit)
		}
	}
}

func TestParseBlockSkipsNoise(t *testing.T) {
	text := `TESTING_LIMITS
  Number of SOQL queries: 4 out of 100
  Number of record type describes: 0 out of 100
  Maximum CPU time: oops out of 10000`
	u, matched := limits.ParseBlock(text)
	if matched != 1 {
		t.Fatalf("matched = %d, want 1", matched)
	}
	if got := u[limits.SOQLQueries]; got.Used != 4 || got.Limit != 100 {
		t.Fatalf("SOQL queries = %+v", got)
	}
	if got := u[limits.CPUTime]; got != (limits.Value{}) {
		t.Fatalf("CPU time should stay zero, got %+v", got)
	}
}

func TestTrackerKeepsLatestBlockPerNamespace(t *testing.T) {
	tr := limits.NewTracker()

	var first limits.Usage
	first[limits.SOQLQueries] = limits.Value{Used: 1, Limit: 100}
	tr.Record(10, "default", first)

	var second limits.Usage
	second[limits.SOQLQueries] = limits.Value{Used: 5, Limit: 100}
	tr.Record(20, "default", second)

	u, ok := tr.ByNamespace("default")
	if !ok {
		t.Fatal("namespace default not recorded")
	}
	if u[limits.SOQLQueries].Used != 5 {
		t.Fatalf("used = %d, want 5 (latest block wins)", u[limits.SOQLQueries].Used)
	}
	if snaps := tr.Snapshots(); len(snaps) != 2 || snaps[0].Time != 10 || snaps[1].Time != 20 {
		t.Fatalf("snapshots = %+v", snaps)
	}
}

func TestMergeSumsUsedAndCopiesLimit(t *testing.T) {
	tr := limits.NewTracker()

	var def limits.Usage
	def[limits.SOQLQueries] = limits.Value{Used: 3, Limit: 100}
	def[limits.CPUTime] = limits.Value{Used: 1200, Limit: 10000}
	tr.Record(100, "default", def)

	var pkg limits.Usage
	pkg[limits.SOQLQueries] = limits.Value{Used: 2, Limit: 100}
	pkg[limits.CPUTime] = limits.Value{Used: 300, Limit: 10000}
	tr.Record(200, "mypkg", pkg)

	got := tr.Merge()
	if got[limits.SOQLQueries].Used != 5 {
		t.Errorf("merged SOQL used = %d, want 5", got[limits.SOQLQueries].Used)
	}
	if got[limits.SOQLQueries].Limit != 100 {
		t.Errorf("merged SOQL limit = %d, want 100", got[limits.SOQLQueries].Limit)
	}
	if got[limits.CPUTime].Used != 1500 {
		t.Errorf("merged CPU used = %d, want 1500", got[limits.CPUTime].Used)
	}
	if ns := tr.Namespaces(); len(ns) != 2 || ns[0] != "default" || ns[1] != "mypkg" {
		t.Errorf("namespaces = %v", ns)
	}
}
