// Package domain defines the core business entities of the storefront
// account and notification subsystem, along with their validation rules
// and the error types used to report rule violations.
//
// Entities in this package are persistence-agnostic: they carry no
// database concerns beyond their identifiers and timestamps. Storage
// interfaces for these entities live in the store package.
package domain
