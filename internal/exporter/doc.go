// Package exporter serializes derived well-log samples to CSV and XLSX
// in the canonical column order. Undefined values render as empty
// cells so downstream tooling never sees a fake number.
package exporter
