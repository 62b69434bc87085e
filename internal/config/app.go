package config

import "os"

// BasePath returns the URL prefix the server is mounted under behind a
// reverse proxy, e.g. "/api". Empty when serving from the root.
func BasePath() string {
	return os.Getenv("APP_BASE_PATH")
}

// Port returns the port the HTTP server listens on; the caller picks a
// default when it is unset.
func Port() string {
	return os.Getenv("APP_PORT")
}
