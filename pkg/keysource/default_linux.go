//go:build linux

package keysource

// Default returns the Local State source on Linux.
func Default() Source {
	return NewLocalState(DefaultLocalStatePath())
}
