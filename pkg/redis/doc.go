// Package redis connects the application to Redis with startup retries and
// exposes a health probe. Rate limiting is the primary consumer.
package redis
