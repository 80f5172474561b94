// Package weblog defines the normalized access-log event model and the
// parsers that produce it from raw feed payloads.
//
// Two input shapes are supported: Apache/Nginx combined log format lines and
// JSON records with the common field spellings used by log shippers. Parsing
// never rejects a payload; fields that cannot be extracted fall back to the
// documented defaults so a malformed line degrades to a plainer event rather
// than disappearing from the visualization.
package weblog
