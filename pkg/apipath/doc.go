// Package apipath computes the file names and public hrefs of generated API
// documents.
//
// # Normalization
//
// [Normalize] collapses every run of forward or backward slashes into a single
// "/" and strips leading "./" segments. It is used for source file references,
// filesystem paths and hrefs alike. [NormalizeHref] additionally keeps a URL
// scheme separator ("https://") intact. Both functions are idempotent:
//
//	apipath.Normalize(`.\src//net\\http.js`) // "src/net/http.js"
//
// # Hrefs
//
// Every href is the configured root joined with a path derived from a dotted
// name, then normalized:
//
//	apipath.ClassHref("/docs/", "net.Http.Client") // "/docs/net/Http/Client.json"
//	apipath.ClassHref("/docs/", "Widget")          // "/docs/global/Widget.json"
//	apipath.ClassHref("/docs/", "ui.Index")        // "/docs/ui/Index_class.json"
//	apipath.NamespaceHref("/docs/", "net.Http")    // "/docs/net/Http/index.json"
//
// A class whose simple name is "index" (in any case) gets a "_class" suffix so
// its data file cannot overwrite the manifest of the namespace it lives in.
package apipath
