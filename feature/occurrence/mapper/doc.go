// Package mapper transforms raw bilingual occurrence records from the
// source index into the destination platform's canonical schema.
//
// An occurrence may arrive as an English variant, a Chinese variant, or
// both sharing the same id. The English variant is primary for all
// locale-agnostic fields; localized fields populate only the locales that
// actually exist unless locale backfill is switched on. Category and
// population tags pass through fixed vocabularies; unmapped tags are
// logged and dropped, never fatal.
package mapper
