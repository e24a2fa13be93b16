// Package solr is the read-only client for the source occurrence index.
//
// The index is the source of truth for which occurrences exist and what
// they currently look like. Two query shapes are used:
//
//   - a grouped CSV query returning the bare id list of currently valid
//     occurrences (active flags, schedule type, capacity, time window)
//   - a JSON documents query returning the full records for a set of ids,
//     one document per language variant
//
// The reconciliation pass always compares against what this client returns
// now, never against what happened on a previous pass.
package solr
