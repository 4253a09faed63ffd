package generator

import (
	"fmt"
	"os"

	"github.com/syncgen/syncgen/internal/models"
)

// DiscoverArtifacts rebuilds an ArtifactSet from a previously generated
// output directory without invoking the generator. Validate runs and bridge
// synthesis for skipped APIs both need this view.
func DiscoverArtifacts(root, apiName string) (*models.ArtifactSet, error) {
	stat, err := os.Stat(root)
	if err != nil || !stat.IsDir() {
		return nil, fmt.Errorf("no generated output for %s at %s", apiName, root)
	}

	files, err := discoverFiles(root)
	if err != nil {
		return nil, fmt.Errorf("cannot scan generated output %s: %w", root, err)
	}

	return &models.ArtifactSet{
		APIName:     apiName,
		Root:        root,
		PackageName: PackageName(apiName),
		Files:       files,
	}, nil
}
