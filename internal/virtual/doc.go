// Package virtual keeps a long, variable-height list cheap to display by
// mounting only the entries near the viewport.
//
// Entry heights are unknown until a renderable has been laid out by the host,
// so every entry starts at a fixed estimate. A prefix-sum index over the
// best-known heights maps scroll offsets to entry indices in O(log n). After
// the window changes, a reconciliation pass mounts and unmounts the minimum
// set of renderables, and a measurement pass reads back settled heights and
// corrects the index from the first changed entry onward.
//
// Everything runs on the host's event loop. Deferred work goes through a
// Scheduler with at most one pending reconciliation and one pending
// measurement; each task re-reads the current state when it runs, so Clear
// safely supersedes anything already queued.
package virtual
