// Package cstrings converts between Go strings and C-style null-terminated strings.
package cstrings

import "unsafe"

// CStringToString converts a C-style null-terminated string to a Go string.
func CStringToString(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var length int
	for {
		if *(*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(ptr)) + uintptr(length))) == 0 {
			break
		}
		length++
	}
	return string(unsafe.Slice(ptr, length))
}

// StringToBytes returns s as a null-terminated byte slice.
// The first element may be passed to C as a const char*.
func StringToBytes(s string) []byte {
	return append([]byte(s), 0)
}

// StringsToPtrs converts a slice of strings into null-terminated byte slices and
// the matching pointer array. The byte slices must be kept alive until the
// pointers are no longer in use.
func StringsToPtrs(strs []string) ([][]byte, []*byte) {
	bufs := make([][]byte, len(strs))
	ptrs := make([]*byte, len(strs))
	for i, s := range strs {
		bufs[i] = StringToBytes(s)
		ptrs[i] = &bufs[i][0]
	}
	return bufs, ptrs
}
