// Package regexcache caches compiled regular expressions so hot paths
// never recompile the same pattern twice. Safe for concurrent use.
package regexcache

import (
	"regexp"
	"sync"
)

// cache maps pattern strings to their compiled form.
var cache sync.Map

// Get returns a compiled regexp for pattern, compiling and caching it
// on first use.
func Get(pattern string) (*regexp.Regexp, error) {
	if cached, ok := cache.Load(pattern); ok {
		return cached.(*regexp.Regexp), nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}

	actual, _ := cache.LoadOrStore(pattern, re)
	return actual.(*regexp.Regexp), nil
}

// MustGet is like Get but panics on an invalid pattern. Intended for
// package-constant patterns.
func MustGet(pattern string) *regexp.Regexp {
	re, err := Get(pattern)
	if err != nil {
		panic(err)
	}
	return re
}
