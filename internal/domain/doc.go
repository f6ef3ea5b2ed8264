// Package domain contains the core entities and validation rules for
// AI-assisted content generation: generation requests, persisted posts,
// and the statistics derived from them. It has no dependencies on
// providers, storage, or transport.
package domain
