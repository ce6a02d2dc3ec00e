// Package checkbox ticks checkbox-like form fields addressed by their 1-based
// position in a document's flat form-field list. The automation host is a
// separate channel from the table/paragraph tree used for text fields: a
// Launcher yields an Application, which opens a Session exposing indexed
// Fields. Marker acquires and releases that session itself; nothing else in
// the pipeline shares it.
package checkbox
