// Package ctx holds the key type for values the catalog puts into a context.Context.
package ctx

// CTXKey is used for every context.WithValue call of the catalog,
// so keys never collide with those of other packages.
type CTXKey string
