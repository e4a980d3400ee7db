// Package editor implements the block editor kernel: the host services tunes
// consume, the block and document model, registries for block types and
// tunes, and the load, settings, click and save plumbing around them.
package editor

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	yaml "gopkg.in/yaml.v3"

	"caret/config"
	"caret/dom"
)

// Editor drives one document: it owns the element tree, the loaded blocks
// and the service bundle handed to tunes. Not safe for concurrent use, the
// host serializes access.
type Editor struct {
	log      *zap.Logger
	services *Services
	tuneCfg  map[string]yaml.Node

	dom    *dom.Document
	root   dom.Element
	blocks []*Block
	index  map[uuid.UUID]*Block

	docID   string
	title   string
	changes int
	hook    func(*Block)
}

func New(cfg *config.Config, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	ed := &Editor{
		log:     log,
		tuneCfg: cfg.Editor.Tunes,
	}
	ed.services = &Services{
		I18n:     NewDictionary(cfg.Editor.Locale, log),
		Tooltips: NewTooltips(cfg.Editor.Tooltips),
		Styles: StyleTokens{
			SettingsButton:       cfg.Editor.Styles.Button,
			SettingsButtonActive: cfg.Editor.Styles.ButtonActive,
		},
		Events: &eventBinder{log: log},
	}
	return ed
}

// Services returns the capability bundle tunes receive. Exposed for hosts
// that build settings interfaces of their own.
func (ed *Editor) Services() *Services {
	return ed.services
}

// OnChange installs a host hook invoked once per block change notification.
func (ed *Editor) OnChange(hook func(*Block)) {
	ed.hook = hook
}

// Changes reports the total number of change notifications since Load.
func (ed *Editor) Changes() int {
	return ed.changes
}

func (ed *Editor) Title() string {
	return ed.title
}

func (ed *Editor) DocumentID() string {
	return ed.docID
}

// Load builds the element tree for the document: one holder per block with
// the rendered content inside, decorated by whatever wrapper tunes return.
// Tune instances receive their previously persisted values.
func (ed *Editor) Load(doc Document) error {
	ed.dom = dom.NewDocument()
	ed.root = ed.dom.CreateElement("div")
	ed.root.AddClass("ce-editor")
	ed.dom.SetRoot(ed.root)
	ed.blocks = nil
	ed.index = make(map[uuid.UUID]*Block)
	ed.docID = doc.ID
	ed.title = doc.Title
	ed.changes = 0

	for _, rec := range doc.Blocks {
		blk, err := ed.buildBlock(rec)
		if err != nil {
			return err
		}
		ed.blocks = append(ed.blocks, blk)
		ed.index[blk.id] = blk
	}
	ed.log.Debug("Document loaded", zap.String("id", doc.ID), zap.String("title", doc.Title), zap.Int("blocks", len(ed.blocks)))
	return nil
}

func (ed *Editor) buildBlock(rec BlockRecord) (*Block, error) {
	// Make sure block ID is not empty, unique and is valid UUID
	id, err := uuid.Parse(rec.ID)
	if err != nil {
		if id, err = uuid.NewV7(); err != nil {
			return nil, fmt.Errorf("unable to generate new block UUID: %w", err)
		}
		ed.log.Warn("Block has invalid ID, correcting", zap.String("old_id", rec.ID), zap.Stringer("new_id", id))
	}
	if _, taken := ed.index[id]; taken {
		old := id
		if id, err = uuid.NewV7(); err != nil {
			return nil, fmt.Errorf("unable to generate new block UUID: %w", err)
		}
		ed.log.Warn("Block has duplicate ID, correcting", zap.Stringer("old_id", old), zap.Stringer("new_id", id))
	}

	spec, ok := BlockByName(rec.Type)
	if !ok {
		ed.log.Warn("Unknown block type", zap.String("type", rec.Type), zap.Stringer("id", id))
		if spec, ok = BlockByName("paragraph"); !ok {
			spec = BlockSpec{Name: rec.Type, Render: renderOpaque}
		}
	}

	holder := ed.root.CreateChild("div")
	holder.AddClass("ce-block")
	holder.SetData("id", id.String())

	blk := &Block{
		id:      id,
		kind:    rec.Type,
		data:    rec.Data,
		holder:  holder,
		content: spec.Render(ed.dom, rec.Data),
		notify:  ed.blockChanged,
		orphans: make(map[string]string),
	}

	for _, name := range TuneNames() {
		ts, _ := TuneByName(name)
		blk.tunes = append(blk.tunes, boundTune{
			name: name,
			tune: ts.New(TuneParams{
				API:    ed.services,
				Data:   rec.Tunes[name],
				Config: ed.tuneConfig(name),
				Block:  blk,
			}),
		})
	}
	for name, value := range rec.Tunes {
		if _, known := TuneByName(name); !known {
			blk.orphans[name] = value
		}
	}

	mounted := blk.content
	for _, bt := range blk.tunes {
		if w, ok := bt.tune.(Wrapper); ok {
			mounted = w.Wrap(mounted)
		}
	}
	holder.AppendChild(mounted)
	return blk, nil
}

// renderOpaque stands in when no renderer is registered at all. The payload
// text is kept so nothing is lost on the round trip through the tree.
func renderOpaque(d *dom.Document, data BlockData) dom.Element {
	el := d.CreateElement("div")
	el.SetText(data.Text)
	return el
}

func (ed *Editor) tuneConfig(name string) *yaml.Node {
	node, ok := ed.tuneCfg[name]
	if !ok {
		return nil
	}
	return &node
}

// Body returns the root element holding every block.
func (ed *Editor) Body() dom.Element {
	return ed.root
}

// DOM returns the element tree the editor builds into.
func (ed *Editor) DOM() *dom.Document {
	return ed.dom
}

// HTML serializes the editor body.
func (ed *Editor) HTML() (string, error) {
	return ed.root.HTML()
}

// Blocks returns the loaded blocks in document order.
func (ed *Editor) Blocks() []*Block {
	out := make([]*Block, len(ed.blocks))
	copy(out, ed.blocks)
	return out
}

// Block returns the loaded block with the given ID.
func (ed *Editor) Block(id uuid.UUID) (*Block, bool) {
	blk, ok := ed.index[id]
	return blk, ok
}

// Settings builds a fresh settings panel for the block: every tune renders
// its row anew, previous panels are simply abandoned.
func (ed *Editor) Settings(id uuid.UUID) (dom.Element, error) {
	blk, ok := ed.index[id]
	if !ok {
		return dom.Element{}, fmt.Errorf("no block with ID %s", id)
	}
	return ed.settingsFor(blk), nil
}

func (ed *Editor) settingsFor(blk *Block) dom.Element {
	panel := ed.dom.CreateElement("div")
	panel.AddClass("ce-settings")
	panel.SetData("id", blk.id.String())
	for _, bt := range blk.tunes {
		row := bt.tune.Render()
		if row.IsZero() {
			continue
		}
		panel.AppendChild(row)
	}
	blk.panel = panel
	return panel
}

// Click synthesizes a pointer event inside the block's settings panel. With
// a variant name the event lands on that toggle, or on its glyph when it has
// one, and bubbles up from there. With an empty or unknown name it lands on
// the panel itself, where no toggle resolves and nothing changes. A panel is
// built on demand so clicks work without a prior Settings call.
func (ed *Editor) Click(id uuid.UUID, variant string) error {
	blk, ok := ed.index[id]
	if !ok {
		return fmt.Errorf("no block with ID %s", id)
	}
	if blk.panel.IsZero() {
		ed.settingsFor(blk)
	}

	target := blk.panel
	if len(variant) > 0 {
		if toggle, found := blk.panel.Find(func(el dom.Element) bool {
			return el.Data("variant") == variant
		}); found {
			target = toggle
			if kids := toggle.Children(); len(kids) > 0 {
				target = kids[0]
			}
		} else {
			ed.log.Debug("No toggle for variant, click lands on the panel", zap.String("variant", variant), zap.Stringer("id", id))
		}
	}
	target.Dispatch(dom.EventClick)
	return nil
}

// Save collects the current state back into a document. Tune values come
// from the instances, empty ones are dropped, values of unregistered tunes
// are carried over untouched.
func (ed *Editor) Save() Document {
	out := Document{ID: ed.docID, Title: ed.title, Blocks: make([]BlockRecord, 0, len(ed.blocks))}
	for _, blk := range ed.blocks {
		rec := BlockRecord{ID: blk.id.String(), Type: blk.kind, Data: blk.data}
		tunes := make(map[string]string, len(blk.tunes)+len(blk.orphans))
		for name, value := range blk.orphans {
			tunes[name] = value
		}
		for _, bt := range blk.tunes {
			if value := bt.tune.Save(); len(value) > 0 {
				tunes[bt.name] = value
			}
		}
		if len(tunes) > 0 {
			rec.Tunes = tunes
		}
		out.Blocks = append(out.Blocks, rec)
	}
	return out
}

func (ed *Editor) blockChanged(blk *Block) {
	ed.changes++
	ed.log.Debug("Block changed", zap.Stringer("id", blk.id), zap.String("type", blk.kind), zap.Int("changes", blk.changes))
	if ed.hook != nil {
		ed.hook(blk)
	}
}
