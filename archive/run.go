package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"caret/config"
	"caret/state"
	"caret/store"
)

// RunExport implements the "export" command. It packs a stored document and
// its assets into a bundle archive.
func RunExport(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("export")

	id := cmd.Args().Get(0)
	if len(id) == 0 {
		return errors.New("no document has been specified")
	}
	dst := cmd.Args().Get(1)
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.Overwrite = cmd.Bool("overwrite")

	st, err := store.Open(ctx, env.Cfg.Storage.Path, env.Log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, st.Close())
	}()

	doc, err := st.Document(ctx, id)
	if err != nil {
		return fmt.Errorf("unable to load document %s: %w", id, err)
	}
	assets, err := st.Assets(ctx, doc.ID)
	if err != nil {
		return err
	}

	if len(dst) == 0 {
		base := doc.Title
		if len(base) == 0 {
			base = doc.ID
		}
		dst = config.CleanFileName(base) + bundleExt
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}

	if _, err := os.Stat(dst); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", dst)
		}
		log.Warn("Overwriting existing file", zap.String("file", dst))
		if err = os.Remove(dst); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	log.Info("Export starting", zap.String("id", doc.ID), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Export completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	if err := Export(dst, &Bundle{Document: doc, Assets: assets}, log); err != nil {
		return err
	}

	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("bundle-%s%s", doc.ID, bundleExt), dst)
	}
	return nil
}

// RunImport implements the "import" command. It reads bundle archives and
// saves their documents and assets into the store.
func RunImport(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("import")

	if cmd.Args().Len() == 0 {
		return errors.New("no input source has been specified")
	}

	st, err := store.Open(ctx, env.Cfg.Storage.Path, env.Log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, st.Close())
	}()

	log.Info("Import starting", zap.Int("bundles", cmd.Args().Len()))
	defer func(start time.Time) {
		log.Info("Import completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	var result error
	for _, src := range cmd.Args().Slice() {
		if err := ctx.Err(); err != nil {
			return multierr.Append(result, err)
		}
		src, err := filepath.Abs(src)
		if err != nil {
			result = multierr.Append(result, err)
			continue
		}
		if err := importBundle(ctx, st, src, log); err != nil {
			log.Error("Unable to import bundle", zap.String("source", src), zap.Error(err))
			result = multierr.Append(result, err)
		}
	}
	return result
}

func importBundle(ctx context.Context, st *store.Store, src string, log *zap.Logger) error {
	b, err := Import(src, log)
	if err != nil {
		return err
	}

	doc, err := st.SaveDocument(ctx, *b.Document)
	if err != nil {
		return err
	}
	for name, data := range b.Assets {
		if err := st.SaveAsset(ctx, doc.ID, name, data); err != nil {
			return err
		}
	}

	log.Info("Document imported", zap.String("source", src), zap.String("id", doc.ID),
		zap.String("title", doc.Title), zap.Int("blocks", len(doc.Blocks)), zap.Int("assets", len(b.Assets)))
	return nil
}
