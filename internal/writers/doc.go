// Package writers turns run results into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (text tables, JSON, JSONL).
//   • The classifier stays domain-only; appcore stays orchestration-only.
//   • JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
