// Package fetcher retrieves seminar pages over HTTP.
//
// A Fetcher wraps a single *http.Client created from configuration for the whole run.
// Every request carries the tool's User-Agent, is bounded by the client timeout, and
// any network failure, non-2xx status or oversized body is reported as a *FetchError.
package fetcher
