// Package aggregates defines domain-facing aggregate contracts.
//
// Contracts avoid persistence and transport details. Each one names a write
// boundary whose invariants hold atomically: quota-limited creates and the
// all-or-nothing assessment write.
package aggregates
