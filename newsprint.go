// Package newsprint turns downloaded web pages into structured articles.
// It fetches pages linked from feeds or search results, extracts the
// article body, metadata, and media from raw HTML, and stores the result
// for display and querying.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, lingua/).
package newsprint
