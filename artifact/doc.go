// Package artifact tracks the files produced by completed workflow steps
// and resolves which of them a later stage should consume.
//
// The registry is an insertion-ordered map from producing step name to
// file path: one entry per step, ordering equal to completion order.
// Resolution prefers the typed artifact Kind attached to each entry;
// for entries without a kind tag (custom pipelines, hand-registered
// paths) it falls back to a name-convention match and finally to a
// legacy file-extension match. The fallbacks keep the registry
// compatible with callers that predate kind tagging, but they are weak,
// convention-based heuristics — correctness depends on callers
// respecting stage ordering.
package artifact
