// Package api exposes the JSON HTTP surface: account lookup, niche profile
// CRUD, metered content generation, and the billing webhook.
//
// Authentication happens upstream; the gateway forwards the verified account
// ID in a trusted header and this module treats it as authoritative. Errors
// use a single envelope with machine-readable reason codes, including
// credits_exhausted on 402 so clients can route users to the upgrade flow.
package api
