package archive

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/h2non/filetype"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/net/html/charset"

	"caret/editor"
)

const (
	documentEntry = "document.json"
	assetsDir     = "assets"
	bundleExt     = ".zip"
)

// Bundle is the unpacked form of a document bundle: the document itself and
// any image assets shipped alongside it, keyed by base file name.
type Bundle struct {
	Document *editor.Document
	Assets   map[string][]byte
}

// Export writes the bundle to outputPath. The document entry goes first and
// assets follow in name order, exporting the same bundle twice produces
// identical archives. A final copy pass rewrites entries without zip data
// descriptors.
func Export(outputPath string, b *Bundle, log *zap.Logger) error {
	if b.Document == nil {
		return errors.New("bundle has no document")
	}

	data, err := json.MarshalIndent(b.Document, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to serialize document %s: %w", b.Document.ID, err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(outputPath), "bundle-*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	if err := writeDataToZip(zw, documentEntry, data); err != nil {
		return fmt.Errorf("unable to write %s: %w", documentEntry, err)
	}

	for _, name := range slices.Sorted(maps.Keys(b.Assets)) {
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("asset name %q is not a plain file name", name)
		}
		if err := writeDataToZip(zw, path.Join(assetsDir, name), b.Assets[name]); err != nil {
			return fmt.Errorf("unable to write asset %s: %w", name, err)
		}
	}

	// make sure buffers are flushed before continuing
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to finalize temporary file: %w", err)
	}

	log.Debug("Bundle assembled", zap.String("id", b.Document.ID), zap.Int("assets", len(b.Assets)))
	return copyZipWithoutDataDescriptors(tmpName, outputPath)
}

// Import reads a bundle from the archive at src. The document entry is
// mandatory, assets are optional and must sniff as images to be accepted.
func Import(src string, log *zap.Logger) (*Bundle, error) {
	b := &Bundle{Assets: make(map[string][]byte)}

	err := Walk(src, "", func(_ string, file *zip.File) error {
		switch {
		case file.Name == documentEntry:
			doc, err := readDocument(file)
			if err != nil {
				return err
			}
			b.Document = doc
		case strings.HasPrefix(file.Name, assetsDir+"/"):
			name, data, err := readAsset(file, log)
			if err != nil {
				return err
			}
			if data != nil {
				b.Assets[name] = data
			}
		default:
			log.Debug("Skipping unknown bundle entry", zap.String("entry", file.Name))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if b.Document == nil {
		return nil, fmt.Errorf("bundle has no %s entry (%s)", documentEntry, src)
	}
	return b, nil
}

// readDocument parses the document entry. Exported bundles are UTF-8 but
// foreign tools like to re-encode and add BOMs, so detect before parsing.
func readDocument(file *zip.File) (*editor.Document, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open bundle entry %q: %w", file.Name, err)
	}
	defer rc.Close()

	r, err := charset.NewReader(rc, "application/json")
	if err != nil {
		return nil, fmt.Errorf("unable to detect document encoding: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read bundle entry %q: %w", file.Name, err)
	}
	// the decoders pass a leading byte order mark through as U+FEFF and JSON
	// does not allow it
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	return editor.ParseDocument(data)
}

// readAsset reads and validates one assets entry. Unrecognized or non-image
// content is an error, images that fail to decode are skipped with a warning.
func readAsset(file *zip.File, log *zap.Logger) (string, []byte, error) {
	rc, err := file.Open()
	if err != nil {
		return "", nil, fmt.Errorf("unable to open bundle entry %q: %w", file.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", nil, fmt.Errorf("unable to read bundle entry %q: %w", file.Name, err)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return "", nil, fmt.Errorf("bundle asset %q has unrecognized content type", file.Name)
	}
	if kind.MIME.Type != "image" {
		return "", nil, fmt.Errorf("bundle asset %q is not an image (%s)", file.Name, kind.MIME.Value)
	}

	name := path.Base(file.Name)
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Warn("Unable to decode bundle asset, skipping", zap.String("entry", file.Name), zap.String("type", kind.MIME.Value), zap.Error(err))
		return name, nil, nil
	}

	log.Debug("Read bundle asset", zap.String("entry", file.Name), zap.String("type", kind.MIME.Value),
		zap.Int("width", img.Bounds().Dx()), zap.Int("height", img.Bounds().Dy()))
	return name, data, nil
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func copyZipWithoutDataDescriptors(from, to string) error {

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}
