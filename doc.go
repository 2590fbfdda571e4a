package croissant

// Package croissant provides:
//
// - The Croissant dataset-metadata document model (Document, FileObject, RecordSet, Field)
// - The fixed JSON-LD vocabulary (Context) shared by the generator and the validator
// - Column type inference from a sample value (InferType)
// - A stable error model via Issues (JSON Pointer, code, message)
// - Streaming JSON decoding via Source with duplicate-key/depth/size enforcement
//
// Design policy:
// - Keep only the shared model and public APIs in the root package.
// - Place generation under builder/, validation under validate/, the
//   structural schema under schema/ (built with dsl/ and rules/), and the CLI
//   under cmd/croissant.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  doc, err := builder.Build(ctx, builder.Options{CSVPath: "data.csv", Name: "demo", ...})
//  path, err := builder.Generate(ctx, opts)
//
//  rep := validate.New().ValidateFile(ctx, "croissant.json")
//  if !rep.Passed() { ... rep.Err() ... }
//
