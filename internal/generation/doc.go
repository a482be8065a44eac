// Package generation drives a language model through schema-constrained tool
// calls and assembles the calls into a validated record.
//
// A Runner owns one attempt chain per request. Each attempt invokes the model
// (once, or once per tool group when fan-out is enabled), decodes every tool
// call into a partial record, merges the partials onto a seed and finalizes
// the result. Failed attempts are retried up to MaxAttempts times in total.
package generation
