// Package config defines the application's configuration structures and
// the loading logic that populates them from environment variables and an
// optional config file. Environment variables use the STOREFRONT_ prefix
// and take precedence over file values.
package config
