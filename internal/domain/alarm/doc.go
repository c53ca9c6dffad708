// Package alarm models the CloudWatch alarm notification and the audit
// entries derived from it.
//
// Parse degrades gracefully: a message body that is not a JSON object is
// captured verbatim instead of failing the invocation. Outcome codes form a
// small closed set (NONE, REBOOT_REQUESTED_from_*, SKIPPED_state_*, ERROR_*)
// built through constructors rather than ad-hoc string concatenation.
package alarm
