package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunNoArgs(t *testing.T) {
	err := Run(nil)
	if err == nil {
		t.Fatal("expected error with no args")
	}
	if !strings.Contains(err.Error(), "usage") {
		t.Errorf("expected usage message, got: %v", err)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	err := Run([]string{"convert"})
	if err == nil {
		t.Fatal("expected error with unknown command")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("expected 'unknown command' error, got: %v", err)
	}
}

func TestDumpMissingInput(t *testing.T) {
	err := Run([]string{"dump"})
	if err == nil {
		t.Fatal("expected error with no input file")
	}
	if !strings.Contains(err.Error(), "one input") {
		t.Errorf("expected input-file error, got: %v", err)
	}
}

func TestDumpBadDownsample(t *testing.T) {
	err := Run([]string{"dump", "--downsample", "-5", "in.hpf"})
	if err == nil {
		t.Fatal("expected error with negative downsample")
	}
	if !strings.Contains(err.Error(), "--downsample") {
		t.Errorf("expected '--downsample' error, got: %v", err)
	}
}

func TestDumpUnknownFormat(t *testing.T) {
	// An empty input is a clean end-of-stream, so the format check is what
	// must fail here.
	path := filepath.Join(t.TempDir(), "empty.hpf")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	err := Run([]string{"dump", "--format", "xlsx", path})
	if err == nil {
		t.Fatal("expected error with unknown format")
	}
	if !strings.Contains(err.Error(), "unknown format") {
		t.Errorf("expected 'unknown format' error, got: %v", err)
	}
}

func TestInfoMissingInput(t *testing.T) {
	err := Run([]string{"info"})
	if err == nil {
		t.Fatal("expected error with no input file")
	}
}

func TestUnescapeSep(t *testing.T) {
	if got := unescapeSep(`\t`); got != "\t" {
		t.Errorf("unescapeSep(\\t) = %q", got)
	}
	if got := unescapeSep(","); got != "," {
		t.Errorf("unescapeSep(,) = %q", got)
	}
}

func TestDumpUnknownFormatDiscardsOutputFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.hpf")
	if err := os.WriteFile(in, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.tsv")

	err := Run([]string{"dump", "--format", "xlsx", "--out", out, in})
	if err == nil {
		t.Fatal("expected error with unknown format")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output file committed on a usage error: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

func TestDumpCleansStaleTmpFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "empty.hpf")
	if err := os.WriteFile(in, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out.tsv")
	stale := filepath.Join(dir, "out.tsv.999.tmp")
	if err := os.WriteFile(stale, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Run([]string{"dump", "--out", out, in}); err != nil {
		t.Fatalf("Run(): %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file missing: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Errorf("stale temp file still present: %v", err)
	}
}
