package bootstrap

import (
	"io/fs"
	"path/filepath"
)

// ManifestName is the package manifest that triggers a dependency install
const ManifestName = "package.json"

// skipDirs are directories never descended into during manifest discovery
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// FindManifestDirs returns every directory under root containing a package
// manifest. Order follows the lexical WalkDir enumeration; callers must not
// depend on it.
func FindManifestDirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() == ManifestName {
			dirs = append(dirs, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dirs, nil
}
