// Package export writes a documentation model as a tree of static JSON files.
//
// # Output
//
// For a model with a namespace "core" holding the class "core.Engine",
// [Run] produces:
//
//	out/
//	  index.json            cross-reference of the index files below
//	  api.classes.json      class name -> {href, description}
//	  api.namespaces.json   nested namespace tree keyed by label
//	  api.exceptions.json   exceptions section, verbatim
//	  api.bus.json          bus section, verbatim
//	  api.types.json        types section, verbatim
//	  core/
//	    index.json          namespace manifest
//	    Engine.json         class document
//
// A namespace's directory mirrors its dotted name: "net.Http" is written to
// out/net/Http. A class whose simple name is "index" is written as
// Index_class.json so it cannot replace the manifest.
//
// When a version is configured, files go to out/<version>/ and every href
// starts with <root><version>/.
//
// # Diagnostics
//
// Every class file written is logged at info level. A class listed by a
// namespace but absent from the model is logged at error level, recorded in
// [Result.Missing] and skipped; the run continues. Any I/O failure ends the
// run. Files written before the failure are left in place.
//
// # Preconditions
//
// The namespace graph must be acyclic. A cyclic graph does not terminate.
//
// # Concurrency
//
// Run is synchronous and writes files in a fixed order. Re-running it with
// the same model and options produces byte-identical files.
package export
