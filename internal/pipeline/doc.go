// Package pipeline runs the anonymization of one snapshot as a sequence of
// steps.
//
// Each step receives the RunReport filled in by the steps before it:
// the copy step places the snapshot in the output directory, the load step
// reads the document, the extraction and mapping steps build the name and
// ID mappings, the substitution step rewrites the document, and the write
// step stores it. The audit steps only read the result and add findings.
//
// Steps run strictly one after another. The context is checked between
// steps, so a cancelled run never starts a new step.
package pipeline
