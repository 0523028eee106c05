package objectstore

import (
	"path"
	"strings"
)

// Path addresses one object as bucket plus key
type Path struct {
	Bucket string
	Key    string
}

// ParsePath splits "bucket/key/parts" at the first slash. A value without a
// slash is a bare bucket with an empty key.
func ParsePath(s string) Path {
	s = strings.TrimPrefix(s, "/")
	bucket, key, _ := strings.Cut(s, "/")
	return Path{Bucket: bucket, Key: key}
}

// String renders the path as "bucket/key"
func (p Path) String() string {
	if p.Key == "" {
		return p.Bucket
	}
	return p.Bucket + "/" + p.Key
}

// Dir returns the parent path. The parent of a top-level key is the bucket.
func (p Path) Dir() Path {
	dir := path.Dir(p.Key)
	if dir == "." || dir == "/" {
		dir = ""
	}
	return Path{Bucket: p.Bucket, Key: dir}
}

// Join appends key segments
func (p Path) Join(elem ...string) Path {
	parts := append([]string{p.Key}, elem...)
	return Path{Bucket: p.Bucket, Key: strings.TrimPrefix(path.Join(parts...), "/")}
}

// Base returns the last key segment
func (p Path) Base() string {
	return path.Base(p.Key)
}

// Ext returns the extension of the last key segment, including the dot
func (p Path) Ext() string {
	return path.Ext(p.Key)
}
