// Package patch is a fault-tolerant patch and merge engine for text documents.
//
// Given an original document and a change description -- either unified-diff
// text or a raw replacement snippet -- it produces the updated document even
// when the change does not align exactly with the document: stale line
// numbers, drifted context and inconsistent whitespace are tolerated, which
// makes the package suitable for applying edits produced by language models
// rather than deterministic diff tools. Matching is fuzzy (whitespace
// normalized) but deterministic; when no match can be found the returned
// errors carry enough positional detail for a caller to act on without
// re-deriving it.
//
// The engine is a pure function of its inputs: it keeps no state, reads no
// environment and never mutates the caller's document. Either the whole
// change applies or the caller gets a structured error and the original,
// untouched document.
package patch
