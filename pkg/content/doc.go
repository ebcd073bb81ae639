// Package content orchestrates metered content generation: it gates each
// request through the entitlement service, calls the generation gateway, and
// persists the result for later listing, rating, and variation.
//
// The gateway itself is opaque behind the Generator interface; an OpenAI
// implementation is provided. The charge always precedes the generation
// call, and a failed generation is not refunded — exhaustion and generation
// failures are reported to the caller, never retried here.
package content
