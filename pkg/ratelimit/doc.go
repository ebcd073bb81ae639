// Package ratelimit provides fixed-window request rate limiting with
// pluggable storage. The Redis store coordinates limits across instances;
// the in-memory store serves tests and single-instance deployments.
//
// The HTTP middleware fails open: a storage outage degrades to unlimited
// traffic instead of taking the API down with it.
package ratelimit
