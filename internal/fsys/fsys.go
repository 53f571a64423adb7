// Package fsys is the filesystem capability consumed by the resolver and the
// response builder. All names are relative to a serving root.
package fsys

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

var ErrOutsideRoot = errors.New("name escapes the serving root")

//go:generate mockgen -source fsys.go -destination mock/fsys.go
type Filesystem interface {
	IsFile(name string) bool
	IsDir(name string) bool
	// ListDir returns the direct entries of name in the order the
	// filesystem reports them.
	ListDir(name string) ([]string, error)
	ReadFile(name string) ([]byte, error)
}

var _ Filesystem = Dir{}

// Dir serves names from Root. With Confine unset a name is joined onto Root
// as-is, so ".." segments may reach outside of it.
type Dir struct {
	Root    string
	Confine bool
}

// Abs maps name onto the disk.
func (d Dir) Abs(name string) (string, error) {
	root := d.Root
	if root == "" {
		root = "."
	}

	p := filepath.Join(root, filepath.FromSlash(name))
	if !d.Confine {
		return p, nil
	}

	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return p, nil
}

func (d Dir) stat(name string) (os.FileInfo, error) {
	p, err := d.Abs(name)
	if err != nil {
		return nil, err
	}
	return os.Stat(p)
}

func (d Dir) IsFile(name string) bool {
	info, err := d.stat(name)
	return err == nil && info.Mode().IsRegular()
}

func (d Dir) IsDir(name string) bool {
	info, err := d.stat(name)
	return err == nil && info.IsDir()
}

func (d Dir) ListDir(name string) ([]string, error) {
	p, err := d.Abs(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Readdirnames keeps directory order, os.ReadDir would sort.
	return f.Readdirnames(-1)
}

func (d Dir) ReadFile(name string) ([]byte, error) {
	p, err := d.Abs(name)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}
