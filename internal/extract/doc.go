// Package extract provides implementations of the Extractor interface
// for various document formats. Each extractor knows how to pull plain
// text out of a specific file type.
//
// Extractors are registered with the Registry at startup.
package extract
