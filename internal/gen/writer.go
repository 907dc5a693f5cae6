package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"op-overloading/internal/sourcemap"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// GeneratedFile is one file to be written to the output directory.
type GeneratedFile struct {
	// Filename is relative to the output directory.
	Filename string
	Content  []byte
}

// Files returns the rewritten code and its source map as files named after
// filename. The code gets a sourceMappingURL comment pointing at the map.
func (o *Output) Files(filename string) ([]GeneratedFile, error) {
	return Files(filename, o.Code, o.Map)
}

// Files pairs code with its source map file. The code gets a
// sourceMappingURL comment naming the map by its base name.
func Files(filename, code string, m *sourcemap.Map) ([]GeneratedFile, error) {
	mapName := filename + ".map"

	data, err := m.JSON()
	if err != nil {
		return nil, fmt.Errorf("encoding source map for %s: %w", filename, err)
	}

	code = withMappingURL(code, filepath.Base(mapName))

	return []GeneratedFile{
		{Filename: filename, Content: []byte(code)},
		{Filename: mapName, Content: data},
	}, nil
}

// Inline returns code with the source map embedded as a data URL.
func Inline(code string, m *sourcemap.Map) string {
	return withMappingURL(code, m.URL())
}

func withMappingURL(code, url string) string {
	if code != "" && !strings.HasSuffix(code, "\n") {
		code += "\n"
	}

	return code + "//# sourceMappingURL=" + url + "\n"
}

// WriteFiles writes all generated files to the output directory.
// It creates the directory and any subdirectories the filenames need.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, file := range files {
		outputPath := filepath.Join(outputDir, file.Filename)

		if err := os.MkdirAll(filepath.Dir(outputPath), dirPerm); err != nil {
			return fmt.Errorf("creating directory for %s: %w", file.Filename, err)
		}

		err := os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}
