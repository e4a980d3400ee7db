// Package icons carries the built-in toggle glyphs. Icons are plain SVG
// kept directly in the binary so the kernel has no asset files to locate at
// run time; hosts may override any of them through configuration.
package icons

import "sort"

var defaults = map[string][]byte{
	"call-out": []byte(`<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
  <path d="M4 9 V15 H8 L14 20 V4 L8 9 Z"
        fill="none" stroke="black" stroke-width="1.6"/>
  <path d="M17 9
           C19 10.5 19 13.5 17 15"
        fill="none" stroke="black" stroke-width="1.6"/>
</svg>`),
	"citation": []byte(`<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
  <path d="M9 7
           C6.5 8 5 10 5 13 H8.5 V17 H4 V13
           C4 9.5 5.5 7 8.5 6 Z"
        fill="none" stroke="black" stroke-width="1.4"/>
  <path d="M19 7
           C16.5 8 15 10 15 13 H18.5 V17 H14 V13
           C14 9.5 15.5 7 18.5 6 Z"
        fill="none" stroke="black" stroke-width="1.4"/>
</svg>`),
	"details": []byte(`<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
  <path d="M4 6 H20
           M4 11 H20
           M4 16 H12"
        fill="none" stroke="black" stroke-width="1.6"/>
  <path d="M16 15 L18.5 17.5 L21 15"
        fill="none" stroke="black" stroke-width="1.6"/>
</svg>`),
	"text-xs": []byte(`<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
  <path d="M9.5 16 L12 9.5 L14.5 16 M10.4 14 H13.6"
        fill="none" stroke="black" stroke-width="1.3"/>
  <path d="M10 19.5 H14"
        fill="none" stroke="black" stroke-width="1.3"/>
</svg>`),
	"text-sm": []byte(`<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
  <path d="M9 16.5 L12 8.5 L15 16.5 M10 14 H14"
        fill="none" stroke="black" stroke-width="1.4"/>
  <path d="M9 19.5 H15"
        fill="none" stroke="black" stroke-width="1.4"/>
</svg>`),
	"text-md": []byte(`<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
  <path d="M8 17 L12 7.5 L16 17 M9.3 14 H14.7"
        fill="none" stroke="black" stroke-width="1.5"/>
  <path d="M8 20 H16"
        fill="none" stroke="black" stroke-width="1.5"/>
</svg>`),
	"text-lg": []byte(`<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
  <path d="M7 17.5 L12 6.5 L17 17.5 M8.6 14 H15.4"
        fill="none" stroke="black" stroke-width="1.6"/>
  <path d="M7 20.5 H17"
        fill="none" stroke="black" stroke-width="1.6"/>
</svg>`),
	"text-xl": []byte(`<svg viewBox="0 0 24 24" xmlns="http://www.w3.org/2000/svg">
  <path d="M6 18 L12 5.5 L18 18 M7.9 14 H16.1"
        fill="none" stroke="black" stroke-width="1.8"/>
  <path d="M6 21 H18"
        fill="none" stroke="black" stroke-width="1.8"/>
</svg>`),
}

// Get returns the built-in glyph for the given name.
func Get(name string) ([]byte, bool) {
	data, ok := defaults[name]
	return data, ok
}

// Names lists every built-in glyph in sorted order.
func Names() []string {
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns a fresh copy of the whole glyph set, safe for callers to
// override entries in.
func Defaults() map[string][]byte {
	out := make(map[string][]byte, len(defaults))
	for name, data := range defaults {
		out[name] = data
	}
	return out
}
