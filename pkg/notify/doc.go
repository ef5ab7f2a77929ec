// Package notify defines the user-facing notifications emitted around a
// submission (validation failure, sending, success, failure), renders their
// bodies from embedded pongo2 templates, and ships Terminal, Recorder and
// Discard notifiers.
package notify
