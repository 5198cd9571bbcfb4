package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseS3(t *testing.T) {
	loc, err := ParseS3("s3://clinic-billing/2025/12/liquidacion.xlsx")
	if err != nil {
		t.Fatalf("ParseS3: %v", err)
	}
	if loc.Bucket != "clinic-billing" || loc.Key != "2025/12/liquidacion.xlsx" {
		t.Errorf("loc = %+v", loc)
	}

	for _, bad := range []string{"s3://", "s3://bucket", "s3://bucket/", "s3:///key", "/tmp/x.csv"} {
		if _, err := ParseS3(bad); err == nil {
			t.Errorf("ParseS3(%q) should fail", bad)
		}
	}
}

func TestResolverLocalPassThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "billing.csv")
	if err := os.WriteFile(path, []byte("a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var r Resolver
	got, cleanup, err := r.Fetch(context.Background(), path)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	cleanup()
	if got != path {
		t.Errorf("Fetch = %q, want %q", got, path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Error("cleanup must not remove local inputs")
	}

	if _, _, err := r.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("missing local file should fail")
	}
	if err := r.Publish(context.Background(), path, path); err != nil {
		t.Errorf("Publish to a local path should be a no-op, got %v", err)
	}
}

func TestLocalTarget(t *testing.T) {
	got, cleanup, err := LocalTarget("s3://bucket/out/report.xlsx")
	if err != nil {
		t.Fatalf("LocalTarget: %v", err)
	}
	defer cleanup()
	if !strings.HasSuffix(got, "report.xlsx") {
		t.Errorf("LocalTarget = %q", got)
	}

	got, _, _ = LocalTarget("out.parquet")
	if got != "out.parquet" {
		t.Errorf("local target changed: %q", got)
	}
}

func TestContentType(t *testing.T) {
	if contentType("a/b.PARQUET") != "application/vnd.apache.parquet" {
		t.Error("parquet content type")
	}
	if contentType("a/b") != "application/octet-stream" {
		t.Error("default content type")
	}
}
