package models

// Seed categories assigned by the classifier before any suggestion
// collaborator runs.
const (
	CategorySales    = "Sales"
	CategoryTransfer = "Transfer"
	CategoryOther    = "Other"
)

// CategoryConfig represents one category with its matching keywords,
// loaded from the categories YAML file.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// CategoriesConfig is the top-level structure of the categories YAML file.
type CategoriesConfig struct {
	Categories []CategoryConfig `yaml:"categories"`
}
