package driver_test

import (
	"context"
	"crypto/sha256"
	"testing"

	"apexlog/internal/driver"
	"apexlog/internal/parser"
	"apexlog/internal/source"
)

func openTestCache(t *testing.T) *driver.Cache {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c, err := driver.OpenCache("apexlog-test")
	if err != nil {
		t.Fatalf("OpenCache: %v", err)
	}
	return c
}

func sampleSummary(t *testing.T) *driver.Summary {
	t.Helper()
	tr := parser.Parse(source.FromBytes("x.log", []byte(sampleLog)))
	sum, err := driver.Summarize("x.log", tr)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	return sum
}

func TestSummarizeReducesTrace(t *testing.T) {
	sum := sampleSummary(t)
	if sum.EventCount != 2 || sum.MaxDepth != 2 {
		t.Errorf("counts: events=%d depth=%d, want 2/2", sum.EventCount, sum.MaxDepth)
	}
	if sum.Duration != 50 {
		t.Errorf("duration = %d, want 50", sum.Duration)
	}
	if sum.IssueCount != 0 || sum.ParseErrors != 0 || sum.Truncated {
		t.Errorf("clean log produced findings: %+v", sum)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c := openTestCache(t)
	key := driver.Digest(sha256.Sum256([]byte("content")))
	sum := sampleSummary(t)

	if err := c.Put(key, sum); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var got driver.Summary
	ok, err := c.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if got.Path != "x.log" || got.EventCount != 2 || got.Duration != 50 {
		t.Errorf("cached summary mangled: %+v", got)
	}
}

func TestCacheMiss(t *testing.T) {
	c := openTestCache(t)
	var got driver.Summary
	ok, err := c.Get(driver.Digest(sha256.Sum256([]byte("unknown"))), &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("hit for a key that was never put")
	}
}

func TestCacheRejectsForeignSchema(t *testing.T) {
	c := openTestCache(t)
	key := driver.Digest(sha256.Sum256([]byte("content")))
	sum := sampleSummary(t)
	sum.Schema = 99

	if err := c.Put(key, sum); err != nil {
		t.Fatalf("Put: %v", err)
	}
	var got driver.Summary
	ok, err := c.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("schema mismatch must read as a miss")
	}
}

func TestCacheNilReceiverIsInert(t *testing.T) {
	var c *driver.Cache
	key := driver.Digest(sha256.Sum256([]byte("content")))

	if err := c.Put(key, &driver.Summary{}); err != nil {
		t.Errorf("Put on nil cache: %v", err)
	}
	var got driver.Summary
	if ok, err := c.Get(key, &got); ok || err != nil {
		t.Errorf("Get on nil cache: ok=%v err=%v", ok, err)
	}
	if err := c.DropAll(); err != nil {
		t.Errorf("DropAll on nil cache: %v", err)
	}
}

func TestCacheDropAll(t *testing.T) {
	c := openTestCache(t)
	key := driver.Digest(sha256.Sum256([]byte("content")))
	if err := c.Put(key, sampleSummary(t)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var got driver.Summary
	if ok, _ := c.Get(key, &got); ok {
		t.Error("entry survived DropAll")
	}
}

func TestAnalyzeDirServesUnchangedFilesFromCache(t *testing.T) {
	c := openTestCache(t)
	dir := t.TempDir()
	path := writeLog(t, dir, "a.log", sampleLog)

	cold, err := driver.AnalyzeDir(context.Background(), dir, driver.DirOptions{Cache: c})
	if err != nil {
		t.Fatalf("cold run: %v", err)
	}
	if len(cold) != 1 || cold[0].FromCache {
		t.Fatalf("cold run = %+v", cold)
	}

	warm, err := driver.AnalyzeDir(context.Background(), dir, driver.DirOptions{Cache: c})
	if err != nil {
		t.Fatalf("warm run: %v", err)
	}
	if len(warm) != 1 || !warm[0].FromCache {
		t.Fatalf("warm run missed the cache: %+v", warm)
	}
	if warm[0].Trace != nil {
		t.Error("cache hit should not carry a parsed tree")
	}
	if warm[0].Summary == nil || warm[0].Summary.EventCount != 2 {
		t.Errorf("cached summary = %+v", warm[0].Summary)
	}
	if warm[0].Summary.Path != path {
		t.Errorf("cached path = %q, want %q", warm[0].Summary.Path, path)
	}

	// Изменился контент — кэш обязан промахнуться.
	writeLog(t, dir, "a.log", sampleLog+"15:04:05.0 (160)|USER_DEBUG|[1]|DEBUG|done\n")
	fresh, err := driver.AnalyzeDir(context.Background(), dir, driver.DirOptions{Cache: c})
	if err != nil {
		t.Fatalf("fresh run: %v", err)
	}
	if fresh[0].FromCache {
		t.Error("changed content served from cache")
	}
	if fresh[0].Summary.EventCount != 3 {
		t.Errorf("fresh events = %d, want 3", fresh[0].Summary.EventCount)
	}
}
