package minio

import (
	"path"
	"strings"
)

// normalize turns a path into a relative object key: forward slashes, "."
// and ".." resolved without escaping the root, no leading or trailing
// slash. The root is "".
func normalize(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	return strings.Trim(path.Clean("/"+name), "/")
}

// joinKey joins a prefix and a relative key.
func joinKey(prefix, rel string) string {
	switch {
	case prefix == "":
		return rel
	case rel == "":
		return prefix
	default:
		return prefix + "/" + rel
	}
}

// dirKey returns the listing prefix for the directory at key.
// The bucket root lists with "".
func dirKey(key string) string {
	if key == "" {
		return ""
	}
	return key + "/"
}

// parentKey returns the key of the directory containing key.
func parentKey(key string) string {
	i := strings.LastIndexByte(key, '/')
	if i < 0 {
		return ""
	}
	return key[:i]
}
