// Package sero records build-level metadata shared by the sero tooling.
package sero

// Version is the sero release version.
const Version = "v0.1.0"
