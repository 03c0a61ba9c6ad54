// Package rider provides the Rider aggregate: delivery riders with login
// credentials and running counts of their assigned orders.
package rider
