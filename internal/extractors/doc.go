// Package extractors turns raw document bytes into plain text.
// Each file type has its own extractor; the Registry selects one by a
// normalised type token and falls back to plain-text decoding for
// anything it does not recognise.
package extractors
