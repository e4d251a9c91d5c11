package config

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""

	// DefaultJWTSecret is empty; must be provided via flag or environment.
	DefaultJWTSecret = ""

	// MaxUploadBytes caps the size of a single spreadsheet upload (10 MiB).
	MaxUploadBytes = 10 << 20
)
