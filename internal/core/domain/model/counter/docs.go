// Package counter provides the Counter aggregate used for daily order numbers
// and generated user display names.
package counter
