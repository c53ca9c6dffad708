// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a plain console encoder suitable for
//     CloudWatch Logs,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (Infof, ErrorKV, etc.).
//
// The handler accepts a context and extracts the logger from it, enabling
// scoped, structured logging throughout the codebase.
package logger
