package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Category is a post category the console offers when creating or
// filtering posts. The list is deployment configuration, not backend data.
type Category struct {
	Name      string `yaml:"name"`
	SortOrder int    `yaml:"sort_order"`
}

// LoadCategories reads the categories file (categories.yaml).
func LoadCategories(path string) ([]Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrap struct {
		Categories []Category `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &wrap); err != nil {
		return nil, err
	}

	if err := ValidateCategories(wrap.Categories); err != nil {
		return nil, err
	}
	return wrap.Categories, nil
}

// ValidateCategories rejects empty and duplicate names.
func ValidateCategories(categories []Category) error {
	seen := make(map[string]bool)
	for _, c := range categories {
		if c.Name == "" {
			return fmt.Errorf("category with empty name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate category: %s", c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}
