// Package errors provides the structured error type shared by every layer of
// rpg-forge.
//
// An Error carries a Code, a user-facing Message, an optional Cause and
// free-form Meta. Codes map onto HTTP statuses for the JSON API and onto gRPC
// codes for the health/reflection server.
//
// # Basic Usage
//
//	err := errors.NotFoundf("creature %d not found", id)
//	err := errors.InvalidArgument("prompt is required").WithMeta("field", "prompt")
//
// Wrapping keeps the code of the wrapped error:
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load creature")
//	}
//
// # Validation
//
// Record validation collects every field problem before failing:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", c.Name, vb)
//	errors.ValidateRange("abilityScores.strength", c.AbilityScores.Strength, 1, 30, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// The resulting error has CodeInvalidArgument and the per-field messages in
// Meta["validation_errors"].
//
// # Layer Guidelines
//
// Repositories return NotFound for missing records and Unavailable when a
// write keeps losing to concurrent writers.
// Orchestrators validate input, wrap repository errors and tag generation
// failures with a kind. Handlers only translate: GetCode(err).HTTPStatus()
// plus GetMessage(err) become the `{"error": ...}` body.
package errors
