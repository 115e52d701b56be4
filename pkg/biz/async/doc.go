// Package async lifts the biz combinators over pending states.
//
// A Pending is a channel that delivers one biz.Outcome[*biz.State]. Every
// adapter waits for its upstream, applies the same rule as its synchronous
// counterpart and settles a new Pending, so a chain of adapters produces
// the same state as the synchronous chain with the same predicates and
// actions. Steps never overlap.
//
// Key operations:
// - Resolve/Await: enter and leave the pending world
// - Ensure/EnsureNotNil/Execute: adapters over Pending
// - Go/GoAction/Check: lift blocking predicates and actions
// - Chain: fluent form (From/New/Wrap, Ensure, Execute, Await)
//
// If ctx ends before a step settles, the step settles as canceled and the
// state is left as the previous step produced it. Each adapter opens an
// OpenTelemetry span; see WithTracerProvider.
package async
