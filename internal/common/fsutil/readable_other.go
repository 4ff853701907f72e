//go:build !unix

package fsutil

import "os"

// Windows has no access(2); opening for read is the closest probe.
func readable(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}
