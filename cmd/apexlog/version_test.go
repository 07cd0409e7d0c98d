package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestRenderVersionPretty(t *testing.T) {
	info := versionInfo{Version: "1.2.3", GitCommit: "abc1234", BuildDate: "2026-02-01"}

	var buf bytes.Buffer
	renderVersionPretty(&buf, info, versionOptions{format: "pretty"})
	out := buf.String()
	if !strings.Contains(out, "apexlog 1.2.3") {
		t.Errorf("missing version line in %q", out)
	}
	if strings.Contains(out, "abc1234") {
		t.Errorf("hash leaked without --hash: %q", out)
	}

	buf.Reset()
	renderVersionPretty(&buf, info, versionOptions{format: "pretty", showHash: true, showDate: true})
	out = buf.String()
	if !strings.Contains(out, "commit: abc1234") {
		t.Errorf("missing commit in %q", out)
	}
	if !strings.Contains(out, "built:  2026-02-01") {
		t.Errorf("missing build date in %q", out)
	}
}

func TestRenderVersionJSON(t *testing.T) {
	info := versionInfo{Version: "1.2.3"}

	var buf bytes.Buffer
	if err := renderVersionJSON(&buf, info, versionOptions{format: "json", showHash: true}); err != nil {
		t.Fatalf("renderVersionJSON: %v", err)
	}

	var payload versionPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if payload.Tool != "apexlog" {
		t.Errorf("Tool = %q, want apexlog", payload.Tool)
	}
	if payload.Version != "1.2.3" {
		t.Errorf("Version = %q, want 1.2.3", payload.Version)
	}
	if payload.GitCommit != "unknown" {
		t.Errorf("GitCommit = %q, want unknown placeholder", payload.GitCommit)
	}
	if payload.BuildDate != "" {
		t.Errorf("BuildDate = %q, want omitted", payload.BuildDate)
	}
}
