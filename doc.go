// Package schemagen generates Go struct definitions from a JSON-Schema bundle.
//
// A bundle is a single JSON or YAML document whose top-level "definitions"
// object holds one schema per type. Every definition becomes one Go file;
// the file name comes from the definition's "x-file" annotation with the
// source extension replaced by ".go".
//
// # Overview
//
// The module is split into small packages:
//
//   - schema: load a bundle, keeping declaration order
//   - typemap: map a property schema to a Go type
//   - variant: detect tagged unions and extract their variant table
//   - generator: walk the bundle, render and write one file per definition
//   - generrors: the error types shared by all of the above
//
// # Installation
//
//	go install github.com/erraggy/schemagen/cmd/schemagen@latest
//
// # Quick Start
//
//	result, err := generator.GenerateWithOptions(
//		generator.WithFilePath("schema.json"),
//		generator.WithOutputDir("pkg/yaml"),
//		generator.WithPackageName("yaml"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range result.Files {
//		fmt.Println(f.Path)
//	}
//
// Or from the command line:
//
//	schemagen generate -o pkg/yaml schema.json
//
// # Type mapping
//
// Property schemas are mapped by the first rule that matches:
//
//  1. a single allowed string value (one-value enum or const) becomes string
//  2. "type": "array" becomes a slice of the mapped items type
//  3. "type": "object" with additionalProperties and no properties becomes
//     map[string]T
//  4. a "#/definitions/Name" reference becomes *Name
//  5. string, integer, number and boolean become string, int, float64, bool
//
// Anything else is a schema shape error for that definition.
//
// # Tagged unions
//
// A definition whose "type" property has an enum and which declares oneOf
// alternatives of the form allOf[{type: const}, {spec: $ref}] gets an
// UnmarshalJSON method that decodes "spec" into the type selected by "type".
package schemagen
