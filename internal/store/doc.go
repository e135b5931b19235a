// Package store defines the persistence interfaces for the application's
// domain entities, along with the sentinel errors store implementations
// return. Concrete implementations live under internal/platform; handlers
// and services depend only on the interfaces defined here.
package store
