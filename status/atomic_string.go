package status

import (
	"sync/atomic"
	"unicode/utf8"
)

// MaxStringLen caps stored strings in bytes
const MaxStringLen = 64

// AtomicString is a string slot safe for one writer and many readers; the zero value holds ""
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store replaces the value, truncated to MaxStringLen without splitting a rune
func (s *AtomicString) Store(val string) {
	val = clip(val, MaxStringLen)
	s.ptr.Store(&val)
}

func (s *AtomicString) Load() string {
	p := s.ptr.Load()
	if p == nil {
		return ""
	}
	return *p
}

// clip keeps the longest prefix of whole runes fitting in n bytes
func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	end := 0
	for end < len(s) {
		_, w := utf8.DecodeRuneInString(s[end:])
		if end+w > n {
			break
		}
		end += w
	}
	return s[:end]
}
