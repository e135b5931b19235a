// Package mocks provides hand-rolled test doubles for the application's
// interfaces. Each mock exposes optional function fields to override
// behavior per test, with a usable in-memory default implementation
// behind them.
package mocks
