// Package mail provides outbound email delivery. The Transport interface
// abstracts the delivery mechanism so callers can be tested without a
// live SMTP server.
package mail
