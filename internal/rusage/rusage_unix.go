//go:build unix

package rusage

import "golang.org/x/sys/unix"

func peakRSS() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}

	if ru.Maxrss < 0 {
		return 0, nil
	}
	return uint64(ru.Maxrss) * maxrssUnit, nil
}
