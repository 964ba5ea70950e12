// Package docid produces and recovers Basebase document identifiers.
//
// # Generating IDs
//
// A Generator mints IDs for documents created on the client side with
// CollectionReference.Doc(""). Two generators are available:
//
//  1. Random: 20 characters drawn uniformly from [A-Za-z0-9]. This is the
//     default and matches the IDs the server assigns.
//
//  2. UUID: a random (v4) UUID in canonical form.
//
// Neither generator is meant for secrets; IDs only need to be unlikely to
// collide within a collection.
//
//	gen, _ := docid.NewGenerator(docid.GeneratorTypeRandom)
//	id := gen.NewID() // "Xy3kP0aQ9rTb1LmN8vCd"
//
// # Recovering IDs
//
// Documents returned by the server do not always carry their ID in the same
// place. A Chain evaluates an ordered list of strategies and returns the first
// ID found:
//
//  1. FromName: last segment of the document resource name.
//  2. FromIDField: a string "id", "_id" or "ID" field.
//  3. Placeholder: "doc_<index>_<unix millis>".
//
//	chain := docid.DefaultChain(time.Now)
//	id := chain.Extract(doc, i)
package docid
