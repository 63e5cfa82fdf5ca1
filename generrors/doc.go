// Package generrors provides structured error types for schemagen.
//
// Import path: github.com/erraggy/schemagen/generrors
//
// The error types let callers tell a run-fatal condition apart from a failure
// that only affected a single schema definition, using [errors.Is] and
// [errors.As].
//
// # Error Types
//
//   - [SchemaShapeError]: a property or definition matches no recognized pattern
//   - [OutputCollisionError]: two definitions derive the same output path
//   - [RenderError]: the renderer rejected an otherwise well-formed record
//   - [WriteError]: a generated file could not be written
//   - [ParseError]: the schema bundle could not be read or decoded
//   - [ConfigError]: invalid options
//
// # Scope
//
// [SchemaShapeError], [RenderError] and [WriteError] are scoped to one
// definition: the generator records them and moves on to the next definition.
// [OutputCollisionError], [ParseError] and [ConfigError] abort the run before
// any file is written.
//
// # Usage
//
//	result, err := generator.GenerateWithOptions(
//	    generator.WithFilePath("schema.json"),
//	    generator.WithOutputDir("dist/go"),
//	)
//	if errors.Is(err, generrors.ErrOutputCollision) {
//	    // Two definitions share an x-file; nothing was written.
//	}
//	for _, f := range result.Failures {
//	    var shapeErr *generrors.SchemaShapeError
//	    if errors.As(f.Err, &shapeErr) {
//	        fmt.Println(shapeErr.Definition, shapeErr.Property)
//	    }
//	}
package generrors
