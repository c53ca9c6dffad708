// Package handler implements the alarm handler: decode the SNS envelope,
// parse the CloudWatch alarm message, decide whether to reboot the target
// EC2 instance, and persist one audit record to S3.
//
// The flow is strictly linear and synchronous. Failures in the decision step
// are absorbed into ERROR_* outcomes so the invoking platform never retries
// an invocation whose reboot may already have been issued; only a failed
// audit write surfaces as an invocation error.
package handler
