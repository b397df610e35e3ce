// Package aassert provides assertions beyond what stretchr/testify/assert offers.
// They follow the conventions of testify: the first argument is the testing.T,
// the optional last ones are the failure message, and the result reports success.
package aassert
