package gamedata

import (
	"fmt"
	"os"
)

// DefaultMapName is the embedded map used when no map file is configured.
const DefaultMapName = "default.map"

// LoadMap returns map text from path, or the embedded default map when path is empty.
func LoadMap(path string) (string, error) {
	if path == "" {
		content, err := dataFS.ReadFile(DefaultMapName)
		if err != nil {
			return "", fmt.Errorf("failed to read embedded file %s: %w", DefaultMapName, err)
		}
		return string(content), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read map %s: %w", path, err)
	}
	return string(content), nil
}
