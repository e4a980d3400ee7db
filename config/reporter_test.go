package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func openReport(t *testing.T, path string) map[string]string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("failed to open report archive: %v", err)
	}
	defer zr.Close()

	content := make(map[string]string)
	for _, f := range zr.File {
		r, err := f.Open()
		if err != nil {
			t.Fatalf("failed to open archive entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatalf("failed to read archive entry %s: %v", f.Name, err)
		}
		content[f.Name] = string(data)
	}
	return content
}

func TestReport_Finalize(t *testing.T) {
	tmpDir := t.TempDir()

	srcFile := filepath.Join(tmpDir, "source.txt")
	if err := os.WriteFile(srcFile, []byte("file content"), 0644); err != nil {
		t.Fatalf("failed to write source file: %v", err)
	}

	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	r.Store("source.txt", srcFile)
	r.StoreData("inline.txt", []byte("inline content"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content := openReport(t, conf.Destination)

	if _, ok := content["MANIFEST"]; !ok {
		t.Error("report has no MANIFEST")
	}

	if got := content["source.txt"]; got != "file content" {
		t.Errorf("source.txt = %q, want %q", got, "file content")
	}

	if got := content["inline.txt"]; got != "inline content" {
		t.Errorf("inline.txt = %q, want %q", got, "inline content")
	}

	// stored source files are left alone
	if _, err := os.Stat(srcFile); err != nil {
		t.Errorf("stored file should not be removed: %v", err)
	}
}

func TestReport_StoreCopyCleansScratch(t *testing.T) {
	tmpDir := t.TempDir()

	srcDir := filepath.Join(tmpDir, "work")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		t.Fatalf("failed to create work dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "debug.txt"), []byte("dump"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}
	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if err := r.StoreCopy("work", srcDir); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}

	// mutate the original after the copy was taken
	if err := os.WriteFile(filepath.Join(srcDir, "debug.txt"), []byte("changed"), 0644); err != nil {
		t.Fatalf("failed to rewrite test file: %v", err)
	}

	scratch := make([]string, len(r.scratch))
	copy(scratch, r.scratch)
	if len(scratch) == 0 {
		t.Fatal("StoreCopy() did not record scratch directory")
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	content := openReport(t, conf.Destination)
	if got := content["work/debug.txt"]; got != "dump" {
		t.Errorf("work/debug.txt = %q, want copy taken before mutation", got)
	}

	for _, dir := range scratch {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Errorf("scratch dir %s should be removed after Close", dir)
		}
	}

	// the original directory stays
	if _, err := os.Stat(srcDir); err != nil {
		t.Errorf("original dir should not be removed: %v", err)
	}
}

func TestReport_StoreOverwritePanics(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}

	r.Store("name", "path-one")

	defer func() {
		if recover() == nil {
			t.Error("Store with same name and different path should panic")
		}
	}()
	r.Store("name", "path-two")
}

func TestReport_NilReceiver(t *testing.T) {
	var r *Report

	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	if n := r.Name(); n != "" {
		t.Errorf("Name on nil report = %q, want empty", n)
	}
	if err := r.StoreCopy("x", "y"); err != nil {
		t.Errorf("StoreCopy on nil report should not error, got: %v", err)
	}
	r.Store("x", "y")
	r.StoreData("x", []byte("y"))
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}
