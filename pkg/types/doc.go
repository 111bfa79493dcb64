// Package types defines the entity structs, filter objects, error taxonomy,
// and configuration for the Daybook storage core. All identifiers are 64-bit
// integers assigned by the store; entry dates are calendar days with no time
// component; timestamps are set by the store, never by callers.
package types
