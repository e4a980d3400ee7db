package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"caret/editor"
	"caret/store"
)

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
}

func bundleDocument() *editor.Document {
	return &editor.Document{
		ID:    "0193d4b2-3a1e-7c55-bd09-7a37f4a1d001",
		Title: "Field Notes",
		Blocks: []editor.BlockRecord{
			{
				ID:   "0193d4b2-3a1e-7c55-bd09-7a37f4a1d002",
				Type: "paragraph",
				Data: editor.BlockData{Text: "First thought."},
			},
			{
				ID:    "0193d4b2-3a1e-7c55-bd09-7a37f4a1d003",
				Type:  "quote",
				Data:  editor.BlockData{Text: "A quoted line."},
				Tunes: map[string]string{"variant": "citation"},
			},
		},
	}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

type rawEntry struct {
	name string
	data []byte
}

func writeRawBundle(t *testing.T, path string, entries []rawEntry) {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(f)
	for _, e := range entries {
		fw, err := w.Create(e.name)
		if err != nil {
			t.Fatalf("Failed to create entry %s: %v", e.name, err)
		}
		if _, err := fw.Write(e.data); err != nil {
			t.Fatalf("Failed to write entry %s: %v", e.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Failed to close file: %v", err)
	}
}

func TestBundleRoundTrip(t *testing.T) {
	log := testLogger(t)
	dst := filepath.Join(t.TempDir(), "field-notes.zip")

	want := &Bundle{
		Document: bundleDocument(),
		Assets: map[string][]byte{
			"zcover.png":   pngBytes(t, 4, 4),
			"a-sketch.png": pngBytes(t, 2, 2),
		},
	}
	if err := Export(dst, want, log); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	t.Run("entry layout", func(t *testing.T) {
		r, err := zip.OpenReader(dst)
		if err != nil {
			t.Fatalf("OpenReader() error = %v", err)
		}
		defer r.Close()

		var names []string
		for _, f := range r.File {
			names = append(names, f.Name)
			if f.Flags&0x8 != 0 {
				t.Errorf("entry %s still has the data descriptor flag set", f.Name)
			}
		}
		expected := []string{"document.json", "assets/a-sketch.png", "assets/zcover.png"}
		if !slices.Equal(names, expected) {
			t.Errorf("entries = %v, want %v", names, expected)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		got, err := Import(dst, log)
		if err != nil {
			t.Fatalf("Import() error = %v", err)
		}
		if got.Document.ID != want.Document.ID {
			t.Errorf("ID = %q, want %q", got.Document.ID, want.Document.ID)
		}
		if got.Document.Title != "Field Notes" {
			t.Errorf("Title = %q, want Field Notes", got.Document.Title)
		}
		if len(got.Document.Blocks) != 2 {
			t.Fatalf("Blocks = %d, want 2", len(got.Document.Blocks))
		}
		if got.Document.Blocks[1].Tunes["variant"] != "citation" {
			t.Errorf("variant tune = %q, want citation", got.Document.Blocks[1].Tunes["variant"])
		}
		if len(got.Assets) != 2 {
			t.Fatalf("Assets = %d, want 2", len(got.Assets))
		}
		if !bytes.Equal(got.Assets["zcover.png"], want.Assets["zcover.png"]) {
			t.Error("zcover.png content does not round trip")
		}
	})
}

func TestExportRequiresDocument(t *testing.T) {
	log := testLogger(t)

	err := Export(filepath.Join(t.TempDir(), "empty.zip"), &Bundle{}, log)
	if err == nil || !strings.Contains(err.Error(), "no document") {
		t.Errorf("Export() error = %v, want no document error", err)
	}
}

func TestExportRejectsBadAssetName(t *testing.T) {
	log := testLogger(t)

	b := &Bundle{
		Document: bundleDocument(),
		Assets:   map[string][]byte{"sub/cover.png": pngBytes(t, 1, 1)},
	}
	err := Export(filepath.Join(t.TempDir(), "bad.zip"), b, log)
	if err == nil || !strings.Contains(err.Error(), "plain file name") {
		t.Errorf("Export() error = %v, want plain file name error", err)
	}
}

func TestImportDocumentEncodings(t *testing.T) {
	log := testLogger(t)

	docJSON, err := json.Marshal(bundleDocument())
	if err != nil {
		t.Fatalf("Failed to marshal document: %v", err)
	}

	utf16le := func(b []byte) []byte {
		out := []byte{0xFF, 0xFE}
		for _, c := range b {
			out = append(out, c, 0x00)
		}
		return out
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"plain utf-8", docJSON},
		{"utf-8 with BOM", append([]byte{0xEF, 0xBB, 0xBF}, docJSON...)},
		{"utf-16le with BOM", utf16le(docJSON)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filepath.Join(t.TempDir(), "bundle.zip")
			writeRawBundle(t, src, []rawEntry{{documentEntry, tt.data}})

			b, err := Import(src, log)
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if b.Document.Title != "Field Notes" {
				t.Errorf("Title = %q, want Field Notes", b.Document.Title)
			}
			if len(b.Document.Blocks) != 2 {
				t.Errorf("Blocks = %d, want 2", len(b.Document.Blocks))
			}
		})
	}
}

func TestImportRejectsUnknownAsset(t *testing.T) {
	log := testLogger(t)
	src := filepath.Join(t.TempDir(), "bundle.zip")

	docJSON, err := json.Marshal(bundleDocument())
	if err != nil {
		t.Fatalf("Failed to marshal document: %v", err)
	}
	writeRawBundle(t, src, []rawEntry{
		{documentEntry, docJSON},
		{"assets/payload.bin", []byte("just some text")},
	})

	_, err = Import(src, log)
	if err == nil || !strings.Contains(err.Error(), "unrecognized content type") {
		t.Errorf("Import() error = %v, want unrecognized content type error", err)
	}
}

func TestImportRejectsNonImageAsset(t *testing.T) {
	log := testLogger(t)
	src := filepath.Join(t.TempDir(), "bundle.zip")

	docJSON, err := json.Marshal(bundleDocument())
	if err != nil {
		t.Fatalf("Failed to marshal document: %v", err)
	}
	writeRawBundle(t, src, []rawEntry{
		{documentEntry, docJSON},
		{"assets/paper.pdf", []byte("%PDF-1.4\nnot really a paper")},
	})

	_, err = Import(src, log)
	if err == nil || !strings.Contains(err.Error(), "not an image") {
		t.Errorf("Import() error = %v, want not an image error", err)
	}
}

func TestImportSkipsCorruptImage(t *testing.T) {
	log := testLogger(t)
	src := filepath.Join(t.TempDir(), "bundle.zip")

	docJSON, err := json.Marshal(bundleDocument())
	if err != nil {
		t.Fatalf("Failed to marshal document: %v", err)
	}
	// valid PNG signature followed by garbage
	broken := append([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, []byte("garbage")...)
	writeRawBundle(t, src, []rawEntry{
		{documentEntry, docJSON},
		{"assets/broken.png", broken},
		{"assets/good.png", pngBytes(t, 3, 3)},
	})

	b, err := Import(src, log)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if len(b.Assets) != 1 {
		t.Fatalf("Assets = %d, want 1 (broken image skipped)", len(b.Assets))
	}
	if _, ok := b.Assets["good.png"]; !ok {
		t.Error("good.png missing from imported assets")
	}
}

func TestImportMissingDocument(t *testing.T) {
	log := testLogger(t)
	src := filepath.Join(t.TempDir(), "bundle.zip")

	writeRawBundle(t, src, []rawEntry{
		{"assets/cover.png", pngBytes(t, 1, 1)},
	})

	_, err := Import(src, log)
	if err == nil || !strings.Contains(err.Error(), "no document.json") {
		t.Errorf("Import() error = %v, want no document.json error", err)
	}
}

func TestImportUnsafeEntry(t *testing.T) {
	log := testLogger(t)

	docJSON, err := json.Marshal(bundleDocument())
	if err != nil {
		t.Fatalf("Failed to marshal document: %v", err)
	}

	tests := []struct {
		name  string
		entry string
	}{
		{"path traversal", "../evil.png"},
		{"absolute path", "/tmp/evil.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := filepath.Join(t.TempDir(), "bundle.zip")
			writeRawBundle(t, src, []rawEntry{
				{documentEntry, docJSON},
				{tt.entry, []byte("owned")},
			})

			if _, err := Import(src, log); err == nil {
				t.Error("Import() must reject archives with unsafe entry paths")
			}
		})
	}
}

func TestImportBundleIntoStore(t *testing.T) {
	log := testLogger(t)
	ctx := context.Background()
	tmpDir := t.TempDir()

	st, err := store.Open(ctx, filepath.Join(tmpDir, "caret.db"), log)
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	src := filepath.Join(tmpDir, "field-notes.zip")
	want := &Bundle{
		Document: bundleDocument(),
		Assets:   map[string][]byte{"cover.png": pngBytes(t, 2, 2)},
	}
	if err := Export(src, want, log); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	if err := importBundle(ctx, st, src, log); err != nil {
		t.Fatalf("importBundle() error = %v", err)
	}

	doc, err := st.Document(ctx, want.Document.ID)
	if err != nil {
		t.Fatalf("Document() error = %v", err)
	}
	if doc.Title != "Field Notes" {
		t.Errorf("Title = %q, want Field Notes", doc.Title)
	}

	assets, err := st.Assets(ctx, want.Document.ID)
	if err != nil {
		t.Fatalf("Assets() error = %v", err)
	}
	if !bytes.Equal(assets["cover.png"], want.Assets["cover.png"]) {
		t.Error("cover.png content does not survive import")
	}
}
