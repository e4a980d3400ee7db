// Package variant implements the block settings tune that marks a block
// with at most one visual variant: a call-out, a citation, a details fold or
// one of the text sizes. The variant is persisted as a plain name and shows
// up in markup as a variant--<name> class on the block wrapper.
package variant

import (
	"strings"

	"caret/dom"
	"caret/editor"
	"caret/icons"
)

// Name is the tune's registry and persistence key.
const Name = "variant"

const (
	wrapperClass = "cdx-variant"
	rowClass     = "cdx-variants"
	dataKey      = "variant"
)

// Tune keeps the variant of one block. The in-memory value is authoritative:
// a click reads and writes it first, then the tree is synchronized from it
// and the block notified, in that order.
type Tune struct {
	api     *editor.Services
	block   *editor.Block
	value   string // current variant name, empty when none
	wrapper dom.Element
	toggles map[string]dom.Element // latest rendered row only
}

// New is the registered constructor. It restores whatever value was
// persisted for the block, recognized or not.
func New(p editor.TuneParams) editor.Tune {
	return &Tune{
		api:   p.API,
		block: p.Block,
		value: p.Data,
	}
}

// Spec returns the registry entry for this tune.
func Spec() editor.TuneSpec {
	return editor.TuneSpec{Name: Name, New: New}
}

// Register adds the tune to the kernel registry.
func Register() {
	editor.RegisterTune(Spec())
}

// Render builds the settings row: one toggle per catalog entry carrying its
// glyph and localized hint, active exactly when the entry matches the
// current value, and a single delegated click listener on the row. Rows from
// earlier calls are forgotten, synchronization reaches the latest row only.
func (t *Tune) Render() dom.Element {
	d := t.block.Holder().Document()
	row := d.CreateElement("div")
	row.AddClass(rowClass)
	t.toggles = make(map[string]dom.Element, len(catalog))

	for _, entry := range catalog {
		toggle := row.CreateChild("span")
		toggle.AddClass(t.api.Styles.SettingsButton)
		toggle.ToggleClass(t.api.Styles.SettingsButtonActive, entry.Name == t.value)
		toggle.SetData(dataKey, entry.Name)

		if data, ok := icons.Get(entry.Icon); ok {
			if glyph, err := d.ParseFragment(data); err == nil {
				toggle.AppendChild(glyph)
			}
		}
		t.api.Tooltips.Attach(toggle, t.api.I18n.Translate(entry.Title), editor.TooltipOptions{})

		t.toggles[entry.Name] = toggle
	}

	t.api.Events.On(row, dom.EventClick, t.handleClick)
	return row
}

// Wrap decorates the block content once. The wrapper is created on the first
// call and reused after, carrying the class for the current value.
func (t *Tune) Wrap(content dom.Element) dom.Element {
	if t.wrapper.IsZero() {
		if content.IsZero() {
			return content
		}
		t.wrapper = content.Document().CreateElement("div")
		t.wrapper.AddClass(wrapperClass)
		t.wrapper.AppendChild(content)
	}
	t.syncWrapper()
	return t.wrapper
}

// Save reports the value to persist. It never mutates state, values it does
// not recognize included.
func (t *Tune) Save() string {
	return t.value
}

// handleClick serves every click in the row. The toggle is resolved from the
// event target upwards, target included, and a click landing outside any
// toggle does nothing. An active toggle turns its variant off, any other
// turns its variant on, replacing whatever was set.
func (t *Tune) handleClick(ev dom.Event) {
	toggle, ok := ev.Target.Closest(func(el dom.Element) bool {
		return len(el.Data(dataKey)) > 0
	})
	if !ok {
		return
	}

	next := toggle.Data(dataKey)
	if t.value == next {
		next = ""
	}
	t.apply(next)
	t.block.DispatchChange()
}

// apply stores the value and makes the tree agree with it before anyone is
// notified.
func (t *Tune) apply(value string) {
	t.value = value
	t.syncWrapper()
	for name, toggle := range t.toggles {
		toggle.ToggleClass(t.api.Styles.SettingsButtonActive, name == value)
	}
}

// syncWrapper leaves exactly one variant class on the wrapper, none when no
// variant is set. Values the catalog does not know put no class on the
// wrapper, they only survive in Save.
func (t *Tune) syncWrapper() {
	if t.wrapper.IsZero() {
		return
	}
	for _, class := range t.wrapper.Classes() {
		if strings.HasPrefix(class, classPrefix) {
			t.wrapper.RemoveClass(class)
		}
	}
	if _, ok := Lookup(t.value); ok {
		t.wrapper.AddClass(ClassFor(t.value))
	}
}
