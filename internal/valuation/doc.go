// Package valuation enumerates truth assignments over an ordered signal list.
//
// A valuation is identified by an index in [0, 2^n). Its textual form is an
// n-character string of '0' and '1' where the first character belongs to the
// first signal, so index 1 over (a, b) is "01" and means a=0, b=1.
package valuation
