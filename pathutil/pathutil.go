// Package pathutil provides slash normalization for path strings.
//
// Paths are treated as "/"-separated component lists. Unlike path.Clean,
// nothing here resolves "." or ".." or touches the filesystem: the
// functions only collapse separator runs and drop components.
package pathutil

import "strings"

const separator = '/'

// FixSlashes collapses every run of consecutive separators into one.
// When stripTrailing is set, a single trailing separator is removed unless
// the result is the root "/".
func FixSlashes(path string, stripTrailing bool) string {
	if path == "" {
		return path
	}

	var b strings.Builder
	b.Grow(len(path))
	prevSep := false
	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == separator {
			if prevSep {
				continue
			}
			prevSep = true
		} else {
			prevSep = false
		}
		b.WriteByte(c)
	}

	fixed := b.String()
	if stripTrailing && len(fixed) > 1 && fixed[len(fixed)-1] == separator {
		fixed = fixed[:len(fixed)-1]
	}
	return fixed
}

// DropLastPathComponent returns path without its final component, after
// fixing slashes.
//
//	"/foo/bar//baz/" -> "/foo/bar"
//	"/foo"           -> "/"
//	"/"              -> "/"
//	"foo"            -> ""
func DropLastPathComponent(path string) string {
	fixed := FixSlashes(path, true)
	if fixed == "/" {
		return fixed
	}

	i := strings.LastIndexByte(fixed, separator)
	switch {
	case i < 0:
		return ""
	case i == 0:
		return "/"
	default:
		return fixed[:i]
	}
}

// LastPathComponent returns the final component of path after fixing
// slashes. The root "/" is its own last component.
func LastPathComponent(path string) string {
	fixed := FixSlashes(path, true)
	if fixed == "/" {
		return fixed
	}
	return fixed[strings.LastIndexByte(fixed, separator)+1:]
}
