package editor

import (
	"go.uber.org/zap"

	"caret/dom"
)

// Translator localizes interface messages. Implementations return the input
// unchanged when no translation is known.
type Translator interface {
	Translate(msg string) string
}

// Tooltips registers hover hints on elements. Zero options fall back to the
// host defaults.
type Tooltips interface {
	Attach(el dom.Element, label string, opts TooltipOptions)
}

// Listeners binds event handlers on behalf of tunes so the host keeps sight
// of every registration.
type Listeners interface {
	On(el dom.Element, event string, h dom.Handler)
}

// StyleTokens are the class names the host hands out for settings controls.
// Tunes apply them verbatim instead of inventing their own.
type StyleTokens struct {
	SettingsButton       string
	SettingsButtonActive string
}

// Services is the complete capability surface a tune receives from the host.
// Nothing else of the kernel is reachable from tune code.
type Services struct {
	I18n     Translator
	Tooltips Tooltips
	Styles   StyleTokens
	Events   Listeners
}

// eventBinder is the default Listeners implementation. It forwards to the
// element substrate and keeps a count for diagnostics.
type eventBinder struct {
	log   *zap.Logger
	bound int
}

func (b *eventBinder) On(el dom.Element, event string, h dom.Handler) {
	if el.IsZero() || h == nil {
		return
	}
	el.On(event, h)
	b.bound++
	b.log.Debug("Listener attached", zap.String("event", event), zap.String("tag", el.Tag()), zap.Int("total", b.bound))
}
