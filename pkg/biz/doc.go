// Package biz sequences business-rule checks and side-effecting steps over
// a State without using panics for ordinary control flow.
//
// A State starts succeeded. Ensure and EnsureNotNil evaluate checks and
// record a *Error for each failed one; Execute runs an action. Once a State
// has failed every later combinator is skipped, so only the first failing
// step of a straight-line chain records its error.
//
// Errors are split in two kinds:
// - *Error: an expected business-rule violation, always recorded
// - anything else: a fault, recorded by Ensure and returned by Execute
//
// See package chain for a fluent form and package async for the same
// combinators over pending states.
package biz
