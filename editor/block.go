package editor

import (
	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v3"

	"caret/dom"
)

// Tune is one per-block settings extension. Render builds a fresh settings
// row each call, Save reports the value to persist, empty meaning nothing.
type Tune interface {
	Render() dom.Element
	Save() string
}

// Wrapper is implemented by tunes that decorate block content. Wrap receives
// the element to decorate and returns what should be mounted instead, which
// may be the input itself.
type Wrapper interface {
	Wrap(content dom.Element) dom.Element
}

// TuneParams is everything a tune constructor gets.
type TuneParams struct {
	API    *Services
	Data   string     // previously persisted value, may be empty
	Config *yaml.Node // per-tune section from the configuration, may be nil
	Block  *Block     // the block this instance belongs to
}

// Block is the runtime state of one loaded block.
type Block struct {
	id      uuid.UUID
	kind    string
	data    BlockData
	holder  dom.Element
	content dom.Element
	panel   dom.Element
	tunes   []boundTune
	orphans map[string]string // values of tunes nobody registered, kept verbatim
	changes int
	notify  func(*Block)
}

type boundTune struct {
	name string
	tune Tune
}

func (b *Block) ID() uuid.UUID {
	return b.id
}

func (b *Block) Type() string {
	return b.kind
}

func (b *Block) Data() BlockData {
	return b.data
}

// Holder returns the element the block is mounted under.
func (b *Block) Holder() dom.Element {
	return b.holder
}

// Content returns the renderer output before any wrappers.
func (b *Block) Content() dom.Element {
	return b.content
}

// Tune returns the named tune instance bound to this block.
func (b *Block) Tune(name string) (Tune, bool) {
	for _, bt := range b.tunes {
		if bt.name == name {
			return bt.tune, true
		}
	}
	return nil, false
}

// Changes reports how many times the block announced a modification.
func (b *Block) Changes() int {
	return b.changes
}

// DispatchChange is the change notification capability handed to tunes. Each
// call counts once and reaches the host hook once.
func (b *Block) DispatchChange() {
	b.changes++
	if b.notify != nil {
		b.notify(b)
	}
}
