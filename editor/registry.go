package editor

import (
	"slices"

	"caret/dom"
)

// BlockRenderer builds the content element for one block.
type BlockRenderer func(d *dom.Document, data BlockData) dom.Element

// BlockSpec describes a registered block type.
type BlockSpec struct {
	Name   string
	Render BlockRenderer
}

// TuneSpec describes a registered tune. New is called once per block during
// load.
type TuneSpec struct {
	Name string
	New  func(TuneParams) Tune
}

// Registries are filled during program initialization and read-only after,
// so no locking here. Order of registration is preserved: for tunes it
// decides wrapper nesting, innermost first.
var (
	blockRegistry = make(map[string]BlockSpec)
	blockOrder    []string
	tuneRegistry  = make(map[string]TuneSpec)
	tuneOrder     []string
)

// RegisterBlock adds a block type to the registry. It panics on empty or
// duplicate registrations, both are programmer errors.
func RegisterBlock(spec BlockSpec) {
	if len(spec.Name) == 0 || spec.Render == nil {
		panic("editor: block registration requires name and renderer")
	}
	if _, exists := blockRegistry[spec.Name]; exists {
		panic("editor: block type registered twice: " + spec.Name)
	}
	blockRegistry[spec.Name] = spec
	blockOrder = append(blockOrder, spec.Name)
}

// BlockByName looks up a registered block type.
func BlockByName(name string) (BlockSpec, bool) {
	spec, ok := blockRegistry[name]
	return spec, ok
}

// BlockNames lists registered block types in registration order.
func BlockNames() []string {
	return slices.Clone(blockOrder)
}

// ClearBlocks empties the block registry. For testing only.
func ClearBlocks() {
	blockRegistry = make(map[string]BlockSpec)
	blockOrder = nil
}

// RegisterTune adds a tune to the registry. It panics on empty or duplicate
// registrations.
func RegisterTune(spec TuneSpec) {
	if len(spec.Name) == 0 || spec.New == nil {
		panic("editor: tune registration requires name and constructor")
	}
	if _, exists := tuneRegistry[spec.Name]; exists {
		panic("editor: tune registered twice: " + spec.Name)
	}
	tuneRegistry[spec.Name] = spec
	tuneOrder = append(tuneOrder, spec.Name)
}

// TuneByName looks up a registered tune.
func TuneByName(name string) (TuneSpec, bool) {
	spec, ok := tuneRegistry[name]
	return spec, ok
}

// TuneNames lists registered tunes in registration order.
func TuneNames() []string {
	return slices.Clone(tuneOrder)
}

// ClearTunes empties the tune registry. For testing only.
func ClearTunes() {
	tuneRegistry = make(map[string]TuneSpec)
	tuneOrder = nil
}
