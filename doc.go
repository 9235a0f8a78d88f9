package polyjson

// Package polyjson provides:
//
// - A typed JSON value model (Value) with cross-tag numeric equality, hashing,
//   and insertion-ordered objects
// - Open polymorphic decode/encode driven by a discriminator field, via one
//   Registry per abstract interface aggregated under a SerializationContext
// - Ordinal-ordered encoding that keeps inherited fields ahead of subclass
//   fields and the discriminator at a fixed position
// - A stable error model via Issues (JSON Pointer, code, message)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place schema building under jsonschema/, wire codecs under codec/, and the
//   standard result-record types under results/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	sc := polyjson.NewSerializationContext(results.StandardRegistries()...)
//	res, err := sc.Decode(ctx, results.ResultInterface, data)
//	out, err := sc.Encode(ctx, results.ResultInterface, res)
//
// Registries are expected to be populated once at startup and treated as
// read-only afterwards; registration is not safe to run concurrently with
// decode or encode traffic on the same context.
