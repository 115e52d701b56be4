// Package chain provides a fluent wrapper around biz.State for building
// synchronous check/action chains.
//
// Key operations:
// - Start/New: begin a chain over an existing or fresh state
// - Ensure/EnsureThat/EnsureNotNil: checks that record errors on failure
// - Execute: run an action; a non-domain error halts the chain
// - Result/Finally: read the final state and fault
package chain
