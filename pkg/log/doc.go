// Package log is the host logging facility microservices write to.
//
// Loggers are named by category and memoized:
//
//   - legacy: messages rule authors ask to have logged (msi_log writes here)
//   - microservice: diagnostics emitted by microservice plugins themselves
//
// Any other name is accepted; the harness uses "msilog" for its own output.
//
// # Severities
//
// Six fixed levels, in increasing order: TRACE, DEBUG, INFO, WARN, ERROR and
// CRITICAL. A record is written when its level is at or above the threshold
// of its category. Category thresholds are set with SetCategoryLevel; every
// other category follows the global threshold set with SetLevel (INFO by
// default).
//
// # Output
//
// Records are encoded by a zap core. The JSON format writes one object per
// line with the host record keys:
//
//	{"log_level":"info","server_timestamp":"...","log_message":"disk full",
//	 "server_host":"irods1","server_pid":4242,"log_category":"legacy"}
//
// SetFormat(FormatConsole) switches to zap's tab separated console encoder.
// SetOutput redirects every logger, existing ones included, which is how
// tests capture output:
//
//	buf := &bytes.Buffer{}
//	log.SetOutput(buf)
//	log.ForCategory("legacy").Info("hello")
//
// All exported functions are safe for concurrent use.
//
// NOTE: the package name collides with the standard library "log". Alias one
// of them when both are needed.
package log
