// Package errors provides classified error primitives used across styleguide.
//
// A ClassifiedError carries a category (what part of the build failed), a
// severity (whether the build must stop), and a free-form context map used to
// attach the offending input to diagnostics.
//
// Example usage:
//
//	err := errors.NewError(errors.CategoryParse, "could not parse block header").
//		Fatal().
//		WithContext("header", raw).
//		WithCause(yamlErr).
//		Build()
package errors
