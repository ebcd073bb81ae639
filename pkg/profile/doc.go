// Package profile manages niche profiles: the reusable audience/tone/goal
// presets an account defines once and then references from every content
// generation request.
//
// Enum-like fields (content goal, tone of voice) are validated at the write
// boundary so downstream prompt construction can trust them.
package profile
