// Package notification records notification-worthy account events and
// delivers the matching transactional emails. Every event persists a
// Notification record for the user's in-app feed; email delivery is
// best-effort and never fails the triggering operation.
package notification
