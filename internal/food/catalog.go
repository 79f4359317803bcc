package food

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

const maxCatalogResults = 20

// CatalogItem holds the nutrition facts of a known food, per 100 grams.
type CatalogItem struct {
	Name     string  `json:"name"`
	Calories int     `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Catalog is a read-only, in-memory food database loaded from a CSV file
// at startup. Lookups are keyword based and case-insensitive.
type Catalog struct {
	items []CatalogItem
}

func NewCatalog(catalogCsvReader *csv.Reader) (*Catalog, error) {
	catalog := &Catalog{}

	log.Println("reading food catalog CSV ...")

	catalogCsvReader.Comma = ';'
	for {
		record, err := catalogCsvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if len(record) != 5 {
			return nil, fmt.Errorf("record [%s] does not have 5 elements", record)
		}

		// NAME;CALORIES;PROTEIN;CARBS;FAT
		calories, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("record [%s] calories: %w", record, err)
		}
		protein, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("record [%s] protein: %w", record, err)
		}
		carbs, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("record [%s] carbs: %w", record, err)
		}
		fat, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("record [%s] fat: %w", record, err)
		}

		catalog.items = append(catalog.items, CatalogItem{
			Name:     record[0],
			Calories: calories,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      fat,
		})
	}

	log.Printf("food catalog CSV read, %d items", len(catalog.items))

	return catalog, nil
}

func (c *Catalog) Size() int {
	return len(c.items)
}

// Search returns catalog items whose name contains the keyword, capped
// at a small fixed count to keep responses bounded.
func (c *Catalog) Search(keyword string) []CatalogItem {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	found := make([]CatalogItem, 0)
	if keyword == "" {
		return found
	}

	for _, item := range c.items {
		if strings.Contains(strings.ToLower(item.Name), keyword) {
			found = append(found, item)
			if len(found) == maxCatalogResults {
				break
			}
		}
	}
	return found
}
