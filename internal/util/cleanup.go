package util

import (
	"os"
	"path/filepath"
	"strings"
)

type infoLogger interface {
	Infof(string, ...any)
	Errorf(string, ...any)
}

// CleanupUnfinishedTempFolders removes the *_tmp chapter folders a cancelled
// download leaves behind in outputDir.
func CleanupUnfinishedTempFolders(outputDir string, log infoLogger) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return
	}

	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() || !strings.HasSuffix(name, "_tmp") {
			continue
		}

		full := filepath.Join(outputDir, name)
		if err := os.RemoveAll(full); err != nil {
			log.Errorf("cleaning up %s: %v\n", full, err)
			continue
		}
		log.Infof("Removed %s\n", full)
	}
}
