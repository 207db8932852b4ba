// Package mocks provides hand-written test doubles for the store and
// service interfaces. Each mock has function fields for per-test overrides
// and a simple in-memory default implementation.
package mocks
