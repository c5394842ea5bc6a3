// Package template compiles the templatable text of content schemas (question
// labels, hints, advice, section descriptions, messages) into fields that are
// rendered against a filter context.
//
// Fields are evaluated by a sandboxed pongo2 set: auto-escaping is on, tags
// that reach the file system (include, extends, import, ssi) are banned, and
// every variable referenced by the source must be present in the context.
// Multi-line sources are treated as markdown and converted to HTML before the
// template is compiled.
package template
