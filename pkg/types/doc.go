// Package types defines the domain values for the seewee variant engine:
// entries, variants, layouts, the profile singleton, and the standard
// errors shared across stores, the CLI, and the export pipeline.
package types
