//go:build !darwin && !linux

package keysource

import "runtime"

func Default() Source {
	return Unsupported{GOOS: runtime.GOOS}
}
