package editor

import (
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Built-in interface translations keyed by the English messages tunes and
// block renderers pass to Translate.
var translations = map[language.Tag]map[string]string{
	language.German: {
		"Call-out":    "Hervorhebung",
		"Citation":    "Zitat",
		"Details":     "Details",
		"Extra small": "Sehr klein",
		"Small":       "Klein",
		"Medium":      "Mittel",
		"Large":       "Groß",
		"Extra large": "Sehr groß",
	},
	language.Russian: {
		"Call-out":    "Врезка",
		"Citation":    "Цитата",
		"Details":     "Подробности",
		"Extra small": "Очень мелкий",
		"Small":       "Мелкий",
		"Medium":      "Средний",
		"Large":       "Крупный",
		"Extra large": "Очень крупный",
	},
	language.French: {
		"Call-out":    "Encadré",
		"Citation":    "Citation",
		"Details":     "Détails",
		"Extra small": "Très petit",
		"Small":       "Petit",
		"Medium":      "Moyen",
		"Large":       "Grand",
		"Extra large": "Très grand",
	},
}

// First tag doubles as the fallback for unmatched locales.
var supportedLocales = []language.Tag{
	language.English,
	language.German,
	language.Russian,
	language.French,
}

var localeMatcher = language.NewMatcher(supportedLocales)

// Dictionary translates interface messages for one matched locale. A nil
// Dictionary is valid and translates nothing.
type Dictionary struct {
	tag   language.Tag
	table map[string]string
}

// NewDictionary matches the requested locale against the built-in tables and
// returns a dictionary for it. English and anything unmatched need no table.
func NewDictionary(locale string, log *zap.Logger) *Dictionary {
	if len(locale) == 0 {
		return nil
	}
	tag, err := language.Parse(locale)
	if err != nil {
		log.Warn("Unable to parse editor locale, leaving messages untranslated", zap.String("locale", locale), zap.Error(err))
		return nil
	}

	// NOTE: the index is authoritative here, the tag Match returns may carry
	// synthesized extensions
	_, idx, conf := localeMatcher.Match(tag)
	matched := supportedLocales[idx]
	if conf == language.No || matched == language.English {
		log.Debug("Using English editor messages", zap.Stringer("requested", tag))
		return nil
	}
	log.Debug("Editor messages localized", zap.Stringer("requested", tag), zap.String("language", display.English.Languages().Name(matched)))
	return &Dictionary{tag: matched, table: translations[matched]}
}

// Tag reports the matched locale.
func (d *Dictionary) Tag() language.Tag {
	if d == nil {
		return language.English
	}
	return d.tag
}

// Translate returns the localized message, or the message itself when no
// translation exists.
func (d *Dictionary) Translate(msg string) string {
	if d == nil {
		return msg
	}
	if t, ok := d.table[msg]; ok {
		return t
	}
	return msg
}
