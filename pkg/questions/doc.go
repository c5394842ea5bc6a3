// Package questions models the questions of a questionnaire manifest.
//
// A Question is built from a decoded Schema and selects its behaviour from
// the schema type: text, number, boolean, boolean_list, date, list and
// checkboxes, checkbox_tree, pricing, multiquestion and dynamic_list. Every
// question can be filtered against a context (dependency gating and, for
// dynamic lists, repetition per context item), parse submitted form data,
// reshape saved data for a form, map validation error codes to messages and
// be wrapped in a read-only Summary over saved data.
//
// Filter and Summary never modify the receiver; FilterInPlace does.
package questions
