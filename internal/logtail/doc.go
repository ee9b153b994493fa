// Package logtail reads the tail of astrowidget's JSON log file for the
// dashboard's diagnostics pane.
//
// # Reading
//
// Read returns the last N lines of a file using a ring buffer, so memory
// stays O(N) regardless of file size. A missing file yields nil, nil.
//
//	entries, err := logtail.ReadEntries(cfg.LogFile, 200)
//
// # Decoding
//
// Parse turns one zap JSON line into an Entry. The ts, level and msg keys
// become Time, Level and Message; caller and stacktrace are dropped; every
// other key is kept as a Field, sorted by key. Lines that are not JSON are
// returned with only Raw set, so foreign output still shows up.
//
// Format renders an Entry as a single uncolored line. Coloring is the UI's
// job.
package logtail
