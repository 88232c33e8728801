// Package redact binds the sero domain types to the staging engine: it
// supplies the comparator and transform contracts for selections and
// prompts and constructs ready-to-use staging sessions over any store
// adapter.
package redact
