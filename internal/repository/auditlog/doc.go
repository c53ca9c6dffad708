// Package auditlog implements persistence for per-invocation audit entries.
//
// The S3Repository stores each entry as an indented JSON object under a
// date-partitioned, randomly-suffixed key and exposes a Repository interface
// that the handler service depends on.
package auditlog
