// Package generation defines the boundary between the application core
// and external AI text-completion services. It provides the Generator
// interface implemented once per provider, the typed error model shared
// by all providers, and the deterministic prompt and token-budget
// helpers that keep identical requests cacheable.
package generation
