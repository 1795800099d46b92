package config

//go:generate mockgen -source=interfaces.go -destination=../mock/environment_mock.go -package=mock

// Environment exposes the process level indicators used to detect how the
// application was started. The production implementation is returned by
// [OSEnvironment]; tests substitute a mock.
type Environment interface {
	// Getenv returns the value of the environment variable key, or an
	// empty string if it is unset.
	Getenv(key string) string

	// Executable returns the path of the running executable.
	Executable() (string, error)

	// Packaged reports whether the binary was built as a packaged
	// distribution.
	Packaged() bool

	// SourceDir returns the root of the source tree the binary was built
	// from.
	SourceDir() string
}
