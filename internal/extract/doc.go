// Package extract locates event entries in seminar pages.
//
// Every supported page layout has its own Extractor. Sources name their layout by
// Kind in the configuration and the Registry resolves the kind statically, so the
// choice of extractor never depends on page content. Extractors only pull out raw
// field strings; parsing dates and applying defaults is left to package normalize.
//
// A page whose structure holds no entries (an inactive seminar series, a "no events
// found" placeholder row) yields an empty slice, not an error.
package extract
