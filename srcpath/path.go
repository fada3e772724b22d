// Package srcpath canonicalizes the path fragments found in DWARF file
// tables into a single slash-normalized string, the stable key identifying
// one source file across possibly-repeated file entries.
package srcpath

import "strings"

// Path accumulates joined path fragments. The zero value is not useful;
// construct with New.
type Path struct {
	s string
}

// New creates a Path from seed with backslashes normalized to forward
// slashes. A double backslash (a UNC-style root) collapses to a single "/".
func New(seed string) *Path {
	s := strings.ReplaceAll(seed, `\\`, "/")
	s = strings.ReplaceAll(s, `\`, "/")
	return &Path{s: s}
}

// Push joins frag onto the path. A fragment that starts with "/" or
// contains "://" is absolute (or a URI) and replaces the accumulated path
// entirely; compilers sometimes emit fully-resolved filenames whose
// directory attribute should be discarded. Anything else is appended with
// exactly one "/" separator.
func (p *Path) Push(frag string) {
	if strings.HasPrefix(frag, "/") || strings.Contains(frag, "://") {
		p.s = frag
		return
	}
	if !strings.HasSuffix(p.s, "/") {
		p.s += "/"
	}
	p.s += frag
}

// String returns the accumulated canonical path.
func (p *Path) String() string {
	return p.s
}
