// Package typemap classifies a schema property fragment into the Go type of
// the struct field generated for it.
//
// Rules are evaluated in a fixed order and the first match wins:
//
//  1. an enum with exactly one string value, or a string const: a constant string
//  2. type "array": a slice of the type derived from items
//  3. type "object" with an additionalProperties schema and no properties:
//     a map from string to the type derived from additionalProperties
//  4. a $ref under the local reference convention: a pointer to the named type
//  5. type "string", "integer", "number" or "boolean": the matching scalar
//
// A fragment with no declared type whose enum values are all strings is typed
// as a string enum. Anything else is a [generrors.SchemaShapeError].
//
// A [Mapper] holds nothing but the reference convention, so the same fragment
// always yields the same [TypeDescriptor].
package typemap
