// Package render turns questions and sections into presentation agnostic
// views: the data an HTML (or any other) renderer needs to draw a form
// widget, without producing markup itself.
//
// Values passed to the views are keyed by input name, the shape returned by
// Section.UnformatData or a parsed form submission.
package render
