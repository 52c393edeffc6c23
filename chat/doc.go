// Package chat holds the presentation-independent core of the support chat
// widgets: the message model, calendar and time formatting helpers, the
// date/sender grouping engine and the JSONL chat-log reader.
//
// Everything except the reader is pure. Functions that depend on the current
// time take it as an argument; the few wrappers that read the wall clock say
// so in their names or docs.
package chat
