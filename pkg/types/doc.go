// Package types defines the Store interface, domain entity types, wire
// payload shapes, and standard errors for the sero redaction manager.
package types
