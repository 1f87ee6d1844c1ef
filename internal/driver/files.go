package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// shaderExts are the extensions picked up when a directory is checked.
var shaderExts = []string{".hlsl", ".hlsli", ".fx", ".fxh"}

// IsShaderFile reports whether path has one of the HLSL extensions.
func IsShaderFile(path string) bool {
	return slices.Contains(shaderExts, strings.ToLower(filepath.Ext(path)))
}

// ExpandPaths turns command line arguments into a sorted, de-duplicated
// list of files. Directories are walked recursively for shader files;
// files named explicitly are kept whatever their extension.
func ExpandPaths(args []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if IsShaderFile(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	slices.Sort(out)
	return out, nil
}
