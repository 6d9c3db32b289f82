//go:build unix && !darwin && !ios

package rusage

// ru_maxrss is reported in kilobytes.
const maxrssUnit = 1024
