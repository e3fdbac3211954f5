// Package observability provides OpenTelemetry-based metrics extensions
// for Simflow. The MetricsExtension implements lifecycle hooks to record
// system-wide counters for run start, completion, failure, cancellation,
// and step outcomes.
//
// For per-step tracing and metrics, see the middleware package:
// middleware.Tracing() and middleware.Metrics().
package observability
