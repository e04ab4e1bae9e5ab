// Package logtail reads the tail of the farefinder log file for the in-app
// log view.
//
// Read keeps at most twice the requested number of lines in memory however
// large the file grows, and skips blank lines. A missing file returns
// nil, nil: the log is created lazily on first write.
//
// Parse decodes one JSON line produced by package logging into an Entry.
// Anything that is not a JSON object is passed through as the message, so
// stray stderr output in the file still shows up.
//
//	entries, err := logtail.ReadEntries(cfg.LogPath(), 500)
//	for _, e := range entries {
//		fmt.Println(e.Format())
//	}
package logtail
