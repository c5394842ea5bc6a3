// Package content groups questions into sections and sections into
// manifests, the unit a questionnaire page flow is built from. It also holds
// the message and metadata blocks loaded alongside manifests.
//
// Sections and manifests follow the question lifecycle: build from records,
// Filter against a context, then either parse form data with GetData or read
// saved data through Summary. Filter and Summary return fresh copies;
// FilterInPlace and SummaryInPlace rebind the receiver instead.
package content
