// Package server implements the demo editor server: a chi REST API over the
// document store and a websocket loop feeding pointer events into one editor
// kernel per connection.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"caret/content/text"
	"caret/render"
	"caret/state"
	"caret/store"
)

const shutdownTimeout = 5 * time.Second

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("server")

	if cmd.Args().Len() > 0 {
		log.Warn("Mailformed command line, arguments ignored", zap.Strings("ignoring", cmd.Args().Slice()))
	}

	if err := render.PrepareStyles(env, log); err != nil {
		return err
	}

	var spl *text.Splitter
	if env.Cfg.Render.SentenceSpans {
		tag, err := language.Parse(env.Cfg.Render.Language)
		if err != nil {
			log.Warn("Unable to parse render language, no sentence model", zap.String("language", env.Cfg.Render.Language), zap.Error(err))
		} else {
			spl = text.NewSplitter(tag, log)
		}
	}

	st, err := store.Open(ctx, env.Cfg.Storage.Path, env.Log)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, st.Close())
	}()

	h := &handler{env: env, st: st, spl: spl, log: log}

	addr := net.JoinHostPort(env.Cfg.Server.Host, strconv.Itoa(env.Cfg.Server.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.Info("Server starting", zap.String("address", addr))
	defer func(start time.Time) {
		log.Info("Server stopped", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = srv.Shutdown(sctx)
	if lerr := <-errc; !errors.Is(lerr, http.ErrServerClosed) {
		err = multierr.Append(err, lerr)
	}
	return err
}
