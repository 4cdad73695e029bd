//go:build !fastmath

package core

// dbTolerance bounds the error of a decibel conversion.
const dbTolerance = 1e-10
