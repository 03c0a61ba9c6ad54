// Package address provides user addresses and the address Book that keeps
// exactly one of them marked as default.
package address
