//go:build griddebug

package grid

const strictIndex = true
