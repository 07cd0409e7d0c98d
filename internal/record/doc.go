// Package record is the knowledge base about Apex log record types.
//
// # Purpose
//
// The builder does not know anything about concrete record kinds. Everything
// structural lives here: which kinds open a scope, which kinds close them,
// whose exit is implicit on the next line, who accepts free-text continuation
// lines. The table is static and consulted once per dispatched line:
//
//	meta, ok := record.Describe(typeName)
//	e := record.Instantiate(meta, typeName, fields)
//
// # Scope
//
// Describe is a pure lookup. Instantiate builds the tree.Event for one line:
// timestamp, line reference, display text, per-kind counters and the
// OnEnd/OnAfter hooks (row-count backfill from exit records, limit-block
// capture). The table covers the record kinds seen in real logs; unknown
// kinds are reported by the dispatcher as parse errors, never guessed at.
package record
