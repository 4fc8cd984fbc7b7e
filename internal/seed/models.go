package seed

import (
	"github.com/lehigh-university-libraries/circdesk/internal/models"
)

// Entry is one book in a seed file
type Entry struct {
	ID       int    `json:"id" yaml:"id" parquet:"id"`
	Title    string `json:"title" yaml:"title" parquet:"title"`
	Author   string `json:"author" yaml:"author" parquet:"author"`
	Category string `json:"category" yaml:"category" parquet:"category"` // novel, science or history
}

// Record converts the entry into a catalog record
func (e Entry) Record() (*models.Record, error) {
	category, err := models.ParseCategory(e.Category)
	if err != nil {
		return nil, err
	}
	return models.NewRecord(e.ID, e.Title, e.Author, category)
}

// Default returns the shelf the desk starts with when no seed file is configured
func Default() []Entry {
	return []Entry{
		{ID: 101, Title: "Pride_and_Prejudice", Author: "Jane Austen", Category: models.Novel.String()},
		{ID: 201, Title: "Physics_Fundamentals", Author: "H.C. Verma", Category: models.Science.String()},
		{ID: 301, Title: "World_History", Author: "K. Roberts", Category: models.History.String()},
	}
}
