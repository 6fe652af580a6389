// Package component runs the start/stop lifecycle of the long-lived parts of
// the ranking command: telemetry providers and the airport catalog.
//
// Components start in registration order and stop in reverse order. A
// component that failed to start is not stopped.
package component
