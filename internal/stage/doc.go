// Package stage builds the stage paths and SQL statements for moving table
// archives through a Snowflake internal stage.
//
// A file for a table lives under exactly one of two prefixes at any stable
// point in time: "not_processed" (staged, awaiting load) or "processed"
// (durably loaded). The move from pending to done is PUT-then-REMOVE, so a
// crash between the two statements leaves the file in both prefixes, never
// in neither.
package stage
