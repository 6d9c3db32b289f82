//go:build darwin || ios

package rusage

// ru_maxrss is reported in bytes.
const maxrssUnit = 1
