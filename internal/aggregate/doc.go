// Package aggregate runs one scrape: it fetches every configured source in
// order, extracts and normalizes its entries, drops past and unparseable ones,
// removes duplicates and sorts the result.
//
// A failing source is logged and skipped. The run only fails when no source
// could be fetched and extracted, or when the feed cannot be written.
package aggregate
