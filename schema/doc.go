// Package schema loads a JSON-Schema bundle into an order-preserving,
// strongly typed model.
//
// A bundle is a document of the form
//
//	{"definitions": {"Name": {...}, ...}}
//
// written in JSON or YAML. Definitions and their properties keep the order in
// which they appear in the source document; that order drives the order of
// generated files and struct fields.
//
// Schema fragments are decoded into the closed [Schema] struct. Only the
// keywords the generator understands are kept (type, description, x-file,
// enum, const, $ref, items, properties, additionalProperties, oneOf, allOf);
// everything else is ignored. A definition whose body cannot be decoded is
// kept with its error in [Definition].Err; only a malformed bundle structure
// makes parsing fail.
//
// References follow one narrow convention, described by [RefConvention]: a
// $ref names another definition of the same bundle by a fixed pointer prefix
// ("#/definitions/" by default). [CheckRefs] reports references whose target
// is missing from the bundle.
package schema
