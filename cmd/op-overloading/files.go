package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// sourceFile is an input file and its path relative to the output directory.
type sourceFile struct {
	Path string
	Rel  string
}

// expandPaths turns file, directory and glob arguments into source files.
// Directories are walked recursively, skipping node_modules and hidden
// directories.
func expandPaths(args []string) ([]sourceFile, error) {
	var files []sourceFile

	seen := make(map[string]bool)
	add := func(path, rel string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, sourceFile{Path: path, Rel: rel})
		}
	}

	for _, arg := range args {
		if hasMeta(arg) {
			base, _ := doublestar.SplitPattern(filepath.ToSlash(arg))

			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("expanding %s: %w", arg, err)
			}

			for _, m := range matches {
				add(m, relTo(filepath.FromSlash(base), m))
			}

			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(arg, filepath.Base(arg))
			continue
		}

		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if d.IsDir() {
				if path != arg && (d.Name() == "node_modules" || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}

				return nil
			}

			add(path, relTo(arg, path))

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
	}

	return files, nil
}

// checkDestinations fails when two inputs would be written to the same path
// below the output directory.
func checkDestinations(files []sourceFile) error {
	owner := make(map[string]string, len(files))

	for _, f := range files {
		rel := filepath.Clean(f.Rel)
		if prev, ok := owner[rel]; ok {
			return fmt.Errorf("%s and %s would both be written to %s", prev, f.Path, rel)
		}

		owner[rel] = f.Path
	}

	return nil
}

func hasMeta(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

func relTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}

	return rel
}

// moduleID is the id a file is filtered and reported under.
func moduleID(path string) string {
	return filepath.ToSlash(path)
}
