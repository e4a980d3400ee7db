// Package text provides sentence segmentation for rendered prose, used to
// wrap block content into sentence spans that read-along tooling can
// address.
package text

import (
	"iter"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Splitter segments prose into sentences. A nil Splitter is valid and means
// segmentation is off, text passes through whole.
type Splitter struct {
	*sentences.DefaultSentenceTokenizer
}

// NewSplitter returns a splitter for the given language. Only English
// training data is compiled in, anything else turns segmentation off.
func NewSplitter(lang language.Tag, log *zap.Logger) *Splitter {
	base, confidence := lang.Base()
	if confidence == language.No {
		log.Warn("Unable to determine language base", zap.Stringer("tag", lang), zap.Stringer("base", base))
		return nil
	}
	if enBase, _ := language.English.Base(); base != enBase {
		log.Warn("No sentence tokenizer model for language, turning off sentence splitting",
			zap.Stringer("language", lang), zap.String("name", display.English.Languages().Name(lang)))
		return nil
	}
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warn("Unable to load sentences tokenizer data", zap.Stringer("tag", lang), zap.Error(err))
		return nil
	}
	return &Splitter{tok}
}

// Split returns slice of sentences.
// For memory-efficient streaming, use Sentences iterator instead.
func (s *Splitter) Split(in string) []string {

	var sentences []string
	if s == nil {
		// segmentation is off
		return append(sentences, in)
	}

	for _, sentence := range s.Tokenize(in) {
		sentences = append(sentences, sentence.Text)
	}

	// Sentences tokenizer has a funny way of working - sentence trailing
	// spaces belong to the next sentence. That produces spans opening with
	// whitespace. I do not want to change external
	// "github.com/neurosnap/sentences" module - will do careful inplace
	// mockery right here instead.

	for i := range len(sentences) - 1 {
		for idx, sym := range sentences[i+1] {
			if !unicode.IsSpace(sym) {
				sentences[i] = sentences[i] + sentences[i+1][0:idx]
				sentences[i+1] = sentences[i+1][idx:]
				break
			}
		}
	}
	return sentences
}

// Sentences returns an iterator over sentences.
// This is more memory-efficient than Split for large texts as it doesn't
// allocate a slice for all sentences upfront. The iterator applies the same
// space-trimming logic as Split so spans never open with whitespace.
func (s *Splitter) Sentences(in string) iter.Seq[string] {
	return func(yield func(string) bool) {
		if s == nil {
			yield(in)
			return
		}

		sentences := s.Tokenize(in)
		if len(sentences) == 0 {
			return
		}

		for i := 0; i < len(sentences)-1; i++ {
			text := sentences[i].Text

			// move leading spaces of the next sentence onto the current one,
			// same as Split does

			nextText := sentences[i+1].Text
			for idx, sym := range nextText {
				if !unicode.IsSpace(sym) {
					text = text + nextText[0:idx]
					sentences[i+1].Text = nextText[idx:]
					break
				}
			}
			if !yield(text) {
				return
			}
		}
		// Yield the last sentence
		if len(sentences) > 0 {
			yield(sentences[len(sentences)-1].Text)
		}
	}
}
