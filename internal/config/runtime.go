package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// BundleDirEnv names the directory a self-extracting bundle unpacked the
// application into. Its presence marks a packaged run.
const BundleDirEnv = "QCPUMP_BUNDLE_DIR"

// buildMode is set at link time for packaged distributions:
//
//	go build -ldflags "-X github.com/qatrackplus/qcpump/internal/config.buildMode=packaged"
var buildMode string

// Mode is the packaging mode of the running process.
type Mode int

const (
	// SourceRun means the application runs from a source checkout.
	SourceRun Mode = iota
	// PackagedRun means the application runs from a bundled executable.
	PackagedRun
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case PackagedRun:
		return "packaged"
	default:
		return "source"
	}
}

// Runtime describes how the process was started and where its files live.
type Runtime struct {
	Mode Mode
	Root string
}

// Packaged reports whether rt is a packaged run.
func (rt Runtime) Packaged() bool {
	return rt.Mode == PackagedRun
}

// ResourcePath returns the absolute path of the resource at rel. Packaged
// builds keep their resources one level deeper, under a directory named
// after the application.
func (rt Runtime) ResourcePath(rel string) string {
	if rt.Packaged() {
		return filepath.Join(rt.Root, AppName, rel)
	}
	return filepath.Join(rt.Root, rel)
}

// DetectRuntime resolves the packaging mode and root directory from env.
//
// A bundle extraction directory wins and roots the runtime at its parent.
// Otherwise a packaged build is rooted at the directory of its executable.
// Anything else, including a packaged build whose executable cannot be
// resolved, is a source run rooted at the source tree.
func DetectRuntime(env Environment) Runtime {
	if bundle := env.Getenv(BundleDirEnv); bundle != "" {
		return Runtime{Mode: PackagedRun, Root: filepath.Dir(filepath.Clean(bundle))}
	}

	if env.Packaged() {
		if exe, err := env.Executable(); err == nil && exe != "" {
			return Runtime{Mode: PackagedRun, Root: filepath.Dir(exe)}
		}
	}

	return Runtime{Mode: SourceRun, Root: env.SourceDir()}
}

type osEnvironment struct{}

// OSEnvironment returns the [Environment] of the current process.
func OSEnvironment() Environment {
	return osEnvironment{}
}

func (osEnvironment) Getenv(key string) string {
	return os.Getenv(key)
}

func (osEnvironment) Executable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(exe)
}

func (osEnvironment) Packaged() bool {
	return buildMode == "packaged"
}

// SourceDir returns the module root, two levels above this file.
func (osEnvironment) SourceDir() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		wd, _ := os.Getwd()
		return wd
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
