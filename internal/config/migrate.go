package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DirAction reports what [InitConfigDir] did.
type DirAction int

const (
	// DirReady means the directory was already initialised.
	DirReady DirAction = iota
	// DirMigrated means the legacy directory was copied forward.
	DirMigrated
	// DirCreated means an empty directory was created.
	DirCreated
)

func (a DirAction) String() string {
	switch a {
	case DirMigrated:
		return "migrated"
	case DirCreated:
		return "created"
	default:
		return "ready"
	}
}

// InitConfigDir prepares the configuration directory dir.
//
// A directory that already holds a settings file is left alone. Otherwise,
// if legacy exists, its whole tree is copied into dir, keeping any file
// already present in dir. Without a legacy directory dir is created with
// all missing parents. Filesystem errors are returned unchanged.
func InitConfigDir(fs afero.Fs, dir, legacy string) (DirAction, error) {
	initialised, err := afero.Exists(fs, filepath.Join(dir, SettingsFileName))
	if err != nil {
		return DirReady, err
	}
	if initialised {
		return DirReady, nil
	}

	if legacy != "" && filepath.Clean(legacy) != filepath.Clean(dir) {
		found, err := afero.DirExists(fs, legacy)
		if err != nil {
			return DirReady, err
		}
		if found {
			return DirMigrated, copyTree(fs, legacy, dir)
		}
	}

	exists, err := afero.DirExists(fs, dir)
	if err != nil {
		return DirReady, err
	}
	if exists {
		return DirReady, nil
	}

	return DirCreated, fs.MkdirAll(dir, 0o755)
}

// copyTree copies the tree rooted at src into dst, merging into whatever dst
// already holds. Existing destination files win. Symbolic links are followed
// and their targets copied; dangling links and links back into a tree being
// copied are skipped.
func copyTree(fs afero.Fs, src, dst string) error {
	return copyTreeFrom(fs, src, dst, nil)
}

func copyTreeFrom(fs afero.Fs, src, dst string, roots []string) error {
	roots = append(roots, filepath.Clean(src))

	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			return copyLink(fs, path, target, roots)
		case info.IsDir():
			return fs.MkdirAll(target, info.Mode().Perm()|0o700)
		case info.Mode().IsRegular():
			return copyFile(fs, path, target, info.Mode().Perm())
		default:
			return nil
		}
	})
}

func copyLink(fs afero.Fs, link, target string, roots []string) error {
	resolved, err := readLink(fs, link)
	if err != nil {
		return err
	}

	info, err := fs.Stat(resolved)
	if err != nil {
		// dangling
		return nil
	}

	switch {
	case info.IsDir():
		for _, root := range roots {
			if withinDir(root, resolved) {
				return nil
			}
		}
		return copyTreeFrom(fs, resolved, target, roots)
	case info.Mode().IsRegular():
		return copyFile(fs, resolved, target, info.Mode().Perm())
	default:
		return nil
	}
}

// readLink returns the absolute destination of link. Filesystems without
// symlink support return link itself.
func readLink(fs afero.Fs, link string) (string, error) {
	reader, ok := fs.(afero.LinkReader)
	if !ok {
		return link, nil
	}

	dest, err := reader.ReadlinkIfPossible(link)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(filepath.Dir(link), dest)
	}
	return filepath.Clean(dest), nil
}

func withinDir(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func copyFile(fs afero.Fs, src, dst string, perm os.FileMode) error {
	exists, err := afero.Exists(fs, dst)
	if err != nil || exists {
		return err
	}

	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
