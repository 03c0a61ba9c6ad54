// Package user provides the User aggregate. Users are keyed by a stable
// internal id and deduplicated by phone number.
package user
