// Package occurrence implements the occurrence synchronization feature.
//
// It keeps the volunteer-management platform's opportunity catalog in step
// with the source occurrence index by reconciling three pieces of state:
//  1. Index (Solr): the raw bilingual occurrence records and validity rules.
//  2. Ledger (MySQL): the staged canonical snapshot and lifecycle status
//     of every occurrence ever observed.
//  3. Platform (VMP): the destination catalog, written in batches.
//
// Syncing is split into two independent passes. The cache pass classifies
// every id into added, updated, unchanged or deleted and persists the
// outcome (`reconcile` decides, `mapper` produces the canonical snapshot).
// The dispatch pass pushes pending rows to the platform and records the
// per-record verdict.
//
// # Components
//
//   - Service: orchestrates the cache, dispatch and unlist passes.
//   - Ledger: the gorm-backed staging store.
//   - Handler: exposes the HTTP triggers.
//   - Feature: registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /sync/occurrences : run one cache pass.
//   - GET /dispatch/occurrences : send pending rows to the platform.
//   - GET /unlist?occurrenceId=... : unlist occurrences on the platform.
package occurrence
