package config

import "os"

// Development reports whether the server runs in development mode, which
// enables debug logging. Set DEVELOPMENT to anything but "0" to turn it
// on.
func Development() bool {
	v, ok := os.LookupEnv("DEVELOPMENT")
	return ok && v != "0"
}
