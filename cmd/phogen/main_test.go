package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/phogen/phogen"
	phoerrors "github.com/phogen/phogen/errors"
	"github.com/phogen/phogen/gen"
)

func TestWriteGenerated(t *testing.T) {
	values := []phogen.Value{
		phogen.StringValue("a"),
		phogen.StringValue("b"),
		phogen.StringValue("c"),
	}
	p, err := phogen.Build(values)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.c")
	if err := writeGenerated(path, p, gen.Config{}); err != nil {
		t.Fatalf("writeGenerated: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output file is empty")
	}
}

func TestWriteGeneratedFailureLeavesNoFile(t *testing.T) {
	// xxh3 has no embedded source, so generation fails after the build
	// succeeded.
	values := []phogen.Value{
		phogen.StringValue("a"),
		phogen.StringValue("b"),
		phogen.StringValue("c"),
	}
	p, err := phogen.Build(values, phogen.WithFirstOrderHash("xxh3"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "out.c")
	err = writeGenerated(path, p, gen.Config{})
	if !errors.Is(err, phoerrors.ErrNoTemplate) {
		t.Fatalf("err = %v, want ErrNoTemplate", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("failed generation left the output file behind")
	}
	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("read dir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("temporary file left behind: %v", entries)
	}
}
