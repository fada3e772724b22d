// Package sourcemap resolves DWARF line tables into source maps.
//
// The resolver drives a debug-info Source (see the root package) across all
// compilation units, walking each unit's line-number program rows through a
// small state machine that discards tombstone sequences, biasing every
// instruction address by the module's code section offset, and normalizing
// source positions to zero-based line/column pairs grouped by canonical
// file path.
//
// Two invariants hold on the result:
//
//   - globally, each module-absolute address appears at most once; when
//     several rows claim the same instruction, the first one encountered in
//     address order wins, and
//   - per file, entries are address-ordered with no duplicate addresses and
//     no duplicate (line, column) pairs.
//
// The resolved Map serializes to either a grouped-by-file Document or a
// flat CompactDocument.
package sourcemap
