// Package store is documented in store.go; this file carries only the
// package-level split notes.
//
// File layout:
//
//	store.go    — Open/Close, schema migration, connection pooling.
//	opinions.go — opinions table CRUD.
//	links.go    — links table CRUD.
//	debates.go  — debates + opinion_debates CRUD, global-debate lookup.
//
// Tests here are limited to the pure helpers (MillisSince);
// CRUD methods need a live MySQL/Dolt server to exercise meaningfully, left
// gated behind integration tests rather than an in-memory fake, since no
// SQL mock library is available in this module's dependency set.
package store
