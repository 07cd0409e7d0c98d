// Package diag defines the diagnostic findings raised while a log is parsed.
//
// # Purpose
//
//   - Provide a deterministic, serialisable record (Issue) for structural
//     anomalies the tree builder discovers: entries without exits, exits
//     without entries, content the log itself reports as skipped, and
//     size-limit truncation.
//   - Offer a small container (Log) that deduplicates findings by summary and
//     keeps them ordered by the time they refer to, so repeated anomalies do
//     not flood the report.
//
// # Scope
//
// Package diag performs no formatting, IO, or CLI integration. Rendering
// lives in internal/logfmt; raising issues is done by internal/parser.
// Plain parse errors (malformed single lines) are not Issues: they are
// collected as strings on the trace, because they carry no useful time or
// kind of their own.
//
// # Escalation
//
// Issues are never deleted outright. The only mutation besides insertion is
// Replace, which upgrades a generic finding into a more specific one (the
// canonical case: Unexpected-End becomes Max-Size-reached once truncation is
// confirmed). At most one Issue per summary exists at any time.
package diag
