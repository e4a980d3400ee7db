// Package render turns saved editor documents into standalone HTML pages:
// block trees are rebuilt with their tunes applied, the configured stylesheet
// is inlined and prose is optionally split into sentence spans.
package render

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"caret/content/text"
	"caret/css"
	"caret/dom"
	"caret/editor"
	"caret/state"
	"caret/tunes/variant"
)

//go:embed variants.css
var defaultStylesheet []byte

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	if err := PrepareStyles(env, log); err != nil {
		return err
	}

	env.Overwrite = cmd.Bool("overwrite")

	var spl *text.Splitter
	if env.Cfg.Render.SentenceSpans {
		tag, err := language.Parse(env.Cfg.Render.Language)
		if err != nil {
			log.Warn("Unable to parse render language, no sentence model", zap.String("language", env.Cfg.Render.Language), zap.Error(err))
		} else {
			spl = text.NewSplitter(tag, log)
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, spl, log)
}

// PrepareStyles selects the stylesheet to inline into rendered pages and
// checks that it covers every variant class the catalog can put on a wrapper.
// The render and serve commands both call it on startup.
func PrepareStyles(env *state.LocalEnv, log *zap.Logger) error {
	env.DefaultStyle = defaultStylesheet
	if env.Cfg.Render.StylesheetPath != "" {
		data, err := os.ReadFile(env.Cfg.Render.StylesheetPath)
		if err != nil {
			return fmt.Errorf("unable to read style css from %q: %w", env.Cfg.Render.StylesheetPath, err)
		}
		env.DefaultStyle = data
	}

	sheet := css.NewParser(log).Parse(env.DefaultStyle, "render stylesheet")
	for _, entry := range variant.Catalog() {
		if class := variant.ClassFor(entry.Name); !sheet.HasClass(class) {
			log.Warn("Stylesheet has no rule for variant class", zap.String("class", class))
		}
	}
	return nil
}

// process handles the core rendering logic independently of CLI framework. It
// determines the input type (directory or single document) and processes
// accordingly.
func process(ctx context.Context, src, dst string, spl *text.Splitter, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsDir() {
		if err := processDir(ctx, src, dst, spl, log); err != nil {
			return errors.New("unable to process directory")
		}
		return nil
	}

	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}
	if !isDocumentFile(src) {
		return fmt.Errorf("input was not recognized as an editor document (%s)", src)
	}
	return processDocument(ctx, src, filepath.Base(src), dst, spl, log)
}

func isDocumentFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// processDir walks directory tree finding saved documents and renders them.
func processDir(ctx context.Context, dir, dst string, spl *text.Splitter, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("dir", dir))
		}
	}()

	err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !isDocumentFile(path) {
			log.Debug("Skipping file, not recognized as document", zap.String("file", path))
			return nil
		}

		count++

		src := strings.TrimPrefix(strings.TrimPrefix(path, dir), string(filepath.Separator))
		if err := processDocument(ctx, path, src, dst, spl, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
		}
		return nil
	})
	return err
}

// processDocument renders a single saved document. "src" is part of the
// source path (always including file name) relative to the original path.
// When actual file was specified it will be just base file name without a
// path. When looking inside directory it will be relative path inside that
// directory. "dst" is the destination directory where the rendered page
// should be written.
func processDocument(ctx context.Context, path, src, dst string, spl *text.Splitter, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var refID, outputName string

	log.Info("Rendering starting", zap.String("from", src))
	defer func(start time.Time) {
		// NOTE: block renderers and tune factories come from host registration
		// we do not control, if multiple documents are being processed we do
		// not want to stop.
		if r := recover(); r != nil {
			log.Error("Rendering ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("rendering panic: %v", r)
		} else {
			log.Info("Rendering completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("ref_id", refID))
		}
	}(time.Now())

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read document (%s): %w", src, err)
	}
	doc, err := editor.ParseDocument(data)
	if err != nil {
		return fmt.Errorf("unable to parse document (%s): %w", src, err)
	}

	ed := editor.New(env.Cfg, log)
	if err := ed.Load(*doc); err != nil {
		return fmt.Errorf("unable to load document (%s): %w", src, err)
	}

	refID = ed.DocumentID()
	if refID == "" {
		refID = strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
	}

	// Determine output file name and path based on input and configuration.
	outputName = buildOutputPath(ed, src, dst, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	// Save loaded block tree for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData(fmt.Sprintf("tree-%s.txt", refID), []byte(DumpElement(ed.Body())))
	}

	page, err := Page(ed, env, spl)
	if err != nil {
		return fmt.Errorf("unable to generate output: %w", err)
	}
	if err := os.WriteFile(outputName, []byte(page), 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	// Store rendering result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", refID, filepath.Ext(outputName)), outputName)
	}

	return nil
}

// Page assembles a standalone page around the rendered block tree. The
// editor body is re-parented into the page, the editor instance is spent
// after this.
func Page(ed *editor.Editor, env *state.LocalEnv, spl *text.Splitter) (string, error) {
	if env.Cfg.Render.SentenceSpans {
		injectSentenceSpans(ed, spl)
	}

	title := ed.Title()
	if title == "" {
		title = "Untitled"
	}

	page := dom.NewDocument()
	root := page.CreateElement("html")
	root.SetAttr("lang", env.Cfg.Render.Language)

	head := root.CreateChild("head")
	head.CreateChild("meta").SetAttr("charset", "utf-8")
	head.CreateChild("title").SetText(title)
	head.CreateChild("style").SetText(string(env.DefaultStyle))

	root.CreateChild("body").AppendChild(ed.Body())

	page.SetRoot(root)

	// No pretty-printing, adding inter-element whitespace would alter block
	// text once sentence spans are in.
	return page.Render()
}

var proseTags = map[string]bool{
	"p":          true,
	"blockquote": true,
	"li":         true,
}

// injectSentenceSpans rewraps prose text into sentence spans so read-along
// tooling can address individual sentences, data-sid carries the
// "paragraph:sentence" address. Only text leaves are rewrapped, elements with
// element children are left alone.
func injectSentenceSpans(ed *editor.Editor, spl *text.Splitter) {
	leafNo := 0
	for _, blk := range ed.Blocks() {
		leaves := blk.Content().FindAll(func(el dom.Element) bool {
			return proseTags[el.Tag()] && len(el.Children()) == 0
		})
		for _, el := range leaves {
			prose := el.Text()
			if strings.TrimSpace(prose) == "" {
				continue
			}
			leafNo++
			sentNo := 0
			el.SetText("")
			for sentence := range spl.Sentences(prose) {
				sentNo++
				span := el.CreateChild("span")
				span.AddClass("sentence")
				span.SetData("sid", fmt.Sprintf("%d:%d", leafNo, sentNo))
				span.SetText(sentence)
			}
		}
	}
}
