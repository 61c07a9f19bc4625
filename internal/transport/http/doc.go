// Package http exposes the derivation pipeline over HTTP: an upload
// endpoint returning derived samples as JSON, a health endpoint and
// the Prometheus metrics handler.
package http
