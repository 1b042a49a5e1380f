package constants

// Glyphs used by the text renderer.
const (
	Bullet   = "•" // List item marker
	Archived = "▣" // Marks an archived list
	Loading  = "…" // Shown while a query or mutation is running
	Failed   = "✗" // Shown next to a failed query
	Back     = "←" // Back navigation hint
)
