package messages

// Catalog lookup errors.
const (
	CatalogUnknownToolFmt = "unknown tool %q: %w (run 'devstrap list' to see available tools)"
	CatalogToolUnknown    = "tool is not in the catalog"
)
