// Package model defines the minimal text-generation boundary agents depend
// on. A Model turns a normalized Request (instructions + role-tagged
// messages) into a stream of Response chunks; provider adapters live in the
// anthropic and openai subpackages and MockModel serves tests and examples.
// Agents depend only on this contract, never on backend-specific request or
// response shapes.
package model
