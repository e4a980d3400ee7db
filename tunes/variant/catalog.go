package variant

// Entry describes one visual variant. The catalog is fixed at compile time,
// localization of titles happens when a settings row is built.
type Entry struct {
	Name  string // persisted value and wrapper class suffix
	Icon  string // glyph name in the icons package
	Title string // English hint, translated through the host
}

const classPrefix = "variant--"

// catalog lists every variant in presentation order.
var catalog = [...]Entry{
	{Name: "call-out", Icon: "call-out", Title: "Call-out"},
	{Name: "citation", Icon: "citation", Title: "Citation"},
	{Name: "details", Icon: "details", Title: "Details"},
	{Name: "text-xs", Icon: "text-xs", Title: "Extra small"},
	{Name: "text-sm", Icon: "text-sm", Title: "Small"},
	{Name: "text-md", Icon: "text-md", Title: "Medium"},
	{Name: "text-lg", Icon: "text-lg", Title: "Large"},
	{Name: "text-xl", Icon: "text-xl", Title: "Extra large"},
}

// Catalog returns a copy of the variant catalog in presentation order.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog[:])
	return out
}

// Lookup returns the catalog entry with the given name.
func Lookup(name string) (Entry, bool) {
	for _, e := range catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// ClassFor returns the wrapper class carrying the given variant.
func ClassFor(name string) string {
	return classPrefix + name
}
