package utils

import (
	"os"
	"sync"
)

var (
	hostname string
	hostOnce sync.Once
)

// GetHost returns the pod or machine hostname, cached after the first
// lookup. The HOSTNAME variable wins so a deployment can override what
// the kernel reports.
func GetHost() string {
	hostOnce.Do(func() {
		if hostname = os.Getenv("HOSTNAME"); hostname != "" {
			return
		}
		h, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
			return
		}
		hostname = h
	})

	return hostname
}
