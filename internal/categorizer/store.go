package categorizer

import (
	"fmt"
	"os"
	"path/filepath"

	"concilia/internal/models"

	"gopkg.in/yaml.v3"
)

// CategoryStore loads category keyword configuration from a YAML file.
type CategoryStore struct {
	CategoriesFile string
}

// NewCategoryStore creates a store for the given categories file. An
// empty path defaults to "categories.yaml".
func NewCategoryStore(categoriesFile string) *CategoryStore {
	if categoriesFile == "" {
		categoriesFile = "categories.yaml"
	}
	return &CategoryStore{CategoriesFile: categoriesFile}
}

// findConfigFile looks for the configuration file in standard locations.
func (s *CategoryStore) findConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".concilia", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories loads the category keyword table from the YAML file.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	path, err := s.findConfigFile(s.CategoriesFile)
	if err != nil {
		return nil, fmt.Errorf("categories file %s not found: %w", s.CategoriesFile, err)
	}

	data, err := os.ReadFile(path) // #nosec G304 -- resolved from known config locations
	if err != nil {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	var config models.CategoriesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", path, err)
	}

	return config.Categories, nil
}
