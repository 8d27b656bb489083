package domain

// SeenRepository remembers keys that were already processed.
// Implementations must be safe for concurrent use.
type SeenRepository interface {
	// MarkSeen records key and reports whether this is the first time it was seen
	MarkSeen(key string) bool

	// Seen reports whether key is currently remembered
	Seen(key string) bool

	// Len returns the number of remembered keys
	Len() int
}
