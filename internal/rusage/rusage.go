// Package rusage samples process-wide resource usage.
//
// The numbers are a property of the whole process, not of any single batch:
// two batches running side by side observe the same high-water mark.
package rusage

// PeakRSS returns the peak resident set size of the calling process in bytes.
// On platforms without getrusage it falls back to the bytes of memory the Go
// runtime obtained from the OS, which is an upper bound of the heap in use.
func PeakRSS() (uint64, error) {
	return peakRSS()
}
