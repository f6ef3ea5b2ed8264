// Package service contains the application's orchestration layer. The
// generation service runs the full pipeline for one request: validate,
// resolve the provider and credential, consult the response cache, call
// the provider, sanitize the result, and persist the post with its
// metadata. The stats service answers aggregate queries. Services
// depend on interfaces so tests can substitute fakes.
package service
