package assets

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var assetsFS embed.FS

// LoadFile loads an asset by assets-relative path. A file on disk at that path
// takes precedence over the embedded copy.
func LoadFile(path string) ([]byte, error) {
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return data, nil
		}
	}
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
