/*
Package series implements the time-series computation kernel used by every
indicator in this module.

A Series is an immutable, fixed-length sequence of floating point samples
where index 0 is the oldest sample. A sample may be unavailable, which is
represented by NaN. Every operation returns a new Series and never modifies
its operands, so a Series can be shared between goroutines without locking.

Unavailable samples follow two rules:

	arithmetic:  NaN in, NaN out (a + NaN == NaN)
	comparison:  NaN in, false out (a > NaN == false)

Windowed operations do not share a single warm-up policy. MA, Sum, MAD and Std
expand their window from index 0, Highest, Lowest and LinReg stay unavailable
until the window is full, and WMA (and HMA built on it) is zero until the
window is full. Change zero-fills its first n positions while Shift leaves
them unavailable.

Contract violations such as mixing Series of different lengths or passing a
period below 1 panic with an error wrapping ErrLengthMismatch or
ErrInvalidPeriod. They are caller defects, not data conditions.
*/
package series
