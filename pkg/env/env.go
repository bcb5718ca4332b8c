// Package env keeps names of environment variables with special significance
// to rtio.
package env

// Environment variables with special significance to rtio.
//
// Note that some of these env vars may be significant only in special
// circumstances, such as when running unit tests.
const (
	// Scales timeouts in tests; useful on slow CI machines.
	RTIO_TEST_TIME_SCALE = "RTIO_TEST_TIME_SCALE"
)
