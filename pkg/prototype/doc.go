// Package prototype resolves entity prototypes declared as named sections with
// optional parent lists into fully merged component sets.
//
// A load runs in two phases. BuildTable ingests every section, indexing records
// by the name parsed from each header. The resolver then expands each record's
// ancestor graph depth-first, applying ancestors before descendants so that a
// record's own components always win, and a later-declared parent wins over an
// earlier one. Every record is expanded at most once per root, which keeps
// diamonds single-applied and makes cyclic parent graphs terminate.
//
// The package performs no I/O. Non-fatal conditions are delivered to a
// Reporter and resolved components are written to a Sink supplied by the caller.
package prototype
