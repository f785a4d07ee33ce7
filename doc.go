// Package swiftcodec is a from-scratch JSON decoder and encoder.
//
// Decode turns JSON bytes into a Value tree. Encode turns a Value tree back
// into compact or indented JSON bytes. Both operations are single-pass and
// depth-limited. The only state shared between calls is a bounded cache of
// interned object keys, which never changes a decoded result, so two
// concurrent calls never interact observably.
//
// The package does not implement streaming parse/emit, JSON Schema
// validation, comments, trailing commas, or decimal types beyond binary64.
package swiftcodec
