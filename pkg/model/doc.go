// Package model defines the in-memory documentation model consumed by the
// exporter, and decodes it from JSON or YAML.
//
// # Format
//
//	{
//	  "namespaces": {
//	    "core": {
//	      "label": "core",
//	      "description": "Core runtime",
//	      "classes": ["core.Engine"],
//	      "namespaces": {"io": {"classes": {"core.io.Stream": {}}}}
//	    }
//	  },
//	  "classes": {
//	    "core.Engine": {"description": "Engine docs", "sourcefile": "./src/engine.js"}
//	  },
//	  "exceptions": {},
//	  "bus": {},
//	  "types": {}
//	}
//
// A namespace's classes may be listed as an array or as an object whose keys
// are the class names. Both shapes are canonicalized into [Namespace.Classes]
// at decode time, in document order.
//
// Class documents are opaque: apart from "description" and "sourcefile" their
// fields are carried through untouched. The exceptions, bus and types sections
// are kept as raw JSON.
//
// # Preconditions
//
// The namespace graph must be a tree. Cycles are not detected.
package model
