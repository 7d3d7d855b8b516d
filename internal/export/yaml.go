package export

import (
	"fmt"
	"time"

	"github.com/thesavant42/repotablo/internal/models"
	"gopkg.in/yaml.v2"
)

// YAML exports the table with every fetched field
type YAML struct {
	Dir string
	Now func() time.Time
}

type yamlDocument struct {
	Generated    time.Time     `yaml:"generated"`
	Count        int           `yaml:"count"`
	Repositories []models.Repo `yaml:"repositories"`
}

// Export writes repos, in the given order, to a dated YAML file
func (y *YAML) Export(repos []models.Repo) (string, error) {
	now := y.Now()
	data, err := yaml.Marshal(yamlDocument{
		Generated:    now.UTC(),
		Count:        len(repos),
		Repositories: repos,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode yaml: %w", err)
	}
	return writeFile(y.Dir, fileName(now, "yaml"), data)
}
