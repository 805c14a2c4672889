package apipath

import (
	"regexp"
	"strings"
)

const (
	// ManifestFile is the file name of every namespace manifest.
	ManifestFile = "index.json"

	// GlobalSegment prefixes hrefs of classes that have no namespace.
	GlobalSegment = "global"

	// reservedName is the simple class name that collides with ManifestFile.
	reservedName = "index"

	// reservedSuffix is appended to reserved simple names.
	reservedSuffix = "_class"

	ext = ".json"
)

// Kind selects the href rule applied by [Resolve].
type Kind int

const (
	KindClass Kind = iota
	KindNamespace
)

var separators = regexp.MustCompile(`[/\\]+`)

// Normalize collapses runs of "/" and "\" into a single "/" and strips any
// leading "./" segments.
func Normalize(p string) string {
	p = separators.ReplaceAllString(p, "/")
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// NormalizeHref is [Normalize] for hrefs. A leading URL scheme such as
// "https://" is preserved rather than collapsed to "https:/".
func NormalizeHref(href string) string {
	if i := strings.Index(href, "://"); i > 0 && isScheme(href[:i]) {
		return href[:i+3] + Normalize(href[i+3:])
	}
	return Normalize(href)
}

// isScheme reports whether s is a valid URL scheme (RFC 3986 section 3.1).
func isScheme(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}

// Join concatenates parts with "/" and normalizes the result.
func Join(parts ...string) string {
	return Normalize(strings.Join(parts, "/"))
}

// Segment converts a dotted name into slash-separated path segments.
func Segment(dotted string) string {
	return strings.ReplaceAll(dotted, ".", "/")
}

// SimpleName returns the last dotted segment of name.
func SimpleName(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[i+1:]
	}
	return name
}

// IsReserved reports whether a simple class name would collide with a
// namespace manifest file.
func IsReserved(simple string) bool {
	return strings.EqualFold(simple, reservedName)
}

// ClassBase returns the file name of a class without extension:
// its simple name, suffixed with "_class" when reserved.
func ClassBase(name string) string {
	simple := SimpleName(name)
	if IsReserved(simple) {
		return simple + reservedSuffix
	}
	return simple
}

// ClassFile returns the data file name for a class inside its namespace
// directory, e.g. "Client.json" or "Index_class.json".
func ClassFile(name string) string {
	return ClassBase(name) + ext
}

// Resolve computes the public href of a class or namespace.
func Resolve(root, dottedName string, kind Kind) string {
	if kind == KindNamespace {
		return NamespaceHref(root, dottedName)
	}
	return ClassHref(root, dottedName)
}

// ClassHref returns the global href of a fully qualified class name.
// Classes without a namespace are placed under the "global" segment.
func ClassHref(root, name string) string {
	dir := GlobalSegment
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		dir = Segment(name[:i])
	}
	return NormalizeHref(root + "/" + dir + "/" + ClassBase(name) + ext)
}

// NamespaceHref returns the href of the manifest of a dotted namespace.
func NamespaceHref(root, namespace string) string {
	return NormalizeHref(root + "/" + Segment(namespace) + "/" + ManifestFile)
}

// RelativeClassHref builds a class href relative to the namespace that lists
// it: the namespace prefix is stripped from the class name and the remainder
// is joined to the namespace's own path. When the class lives directly in
// namespace this equals [ClassHref].
func RelativeClassHref(root, namespace, name string) string {
	rest := name
	if namespace != "" {
		rest = strings.TrimPrefix(name, namespace+".")
	}
	rel := ClassBase(rest)
	if i := strings.LastIndexByte(rest, '.'); i >= 0 {
		rel = Segment(rest[:i]) + "/" + rel
	}
	return NormalizeHref(root + "/" + Segment(namespace) + "/" + rel + ext)
}
