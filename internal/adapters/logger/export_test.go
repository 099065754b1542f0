package logger

// Exported for white-box testing of error formatting.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// ErrorEntryMessage returns the message of an entry.
func ErrorEntryMessage(e errorEntry) string { return e.message }

// ErrorEntryMetadata returns the metadata of an entry.
func ErrorEntryMetadata(e errorEntry) map[string]any { return e.metadata }
