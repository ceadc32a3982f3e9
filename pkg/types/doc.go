// Package types defines the schema vocabulary for configuration profile
// payloads: the type-tag enumeration, per-field descriptors, ordered schema
// tables, platform targets, and the standard error values shared by the
// validation, container, and serialization packages.
package types
