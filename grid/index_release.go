//go:build !griddebug

package grid

const strictIndex = false
