//go:build fastmath

package core

// dbTolerance bounds the error of a decibel conversion through the
// approximate logarithm.
const dbTolerance = 1e-3
