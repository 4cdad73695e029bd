// Package window provides the tapering windows used when cutting a segment
// out of an impulse response.
//
// A [Function] holds the coefficients of one shape at one size together with
// its amplitude ([Function.Gain]) and noise ([Function.Norm]) corrections.
// A [TukeySpan] is the raised-cosine envelope that bounds the extracted
// segment on an absolute sample axis.
package window
