// Package model defines the domain types and value objects for the
// webdemo-index tools.
//
// This package contains pure data structures with no external dependencies.
// All entities (EnvironmentSet, TypeEntry, MorphologyEntry, SeedEntry) are
// built once per run from a directory scan, serialized to JSON, and then
// discarded. Nothing is persisted besides the output file.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
