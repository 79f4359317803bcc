package food_test

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbogdanovic/fittrack/internal/food"
)

const testCatalogCsv = `chicken breast;165;31;0;3.6
brown rice;112;2.6;23.5;0.9
white rice;130;2.7;28.2;0.3
oats;389;16.9;66.3;6.9
banana;89;1.1;22.8;0.3
`

func newTestCatalog(t *testing.T) *food.Catalog {
	t.Helper()
	catalog, err := food.NewCatalog(csv.NewReader(strings.NewReader(testCatalogCsv)))
	require.NoError(t, err)
	return catalog
}

func TestCatalog_Load(t *testing.T) {
	catalog := newTestCatalog(t)
	assert.Equal(t, 5, catalog.Size())
}

func TestCatalog_Load_BadRecord(t *testing.T) {
	_, err := food.NewCatalog(csv.NewReader(strings.NewReader("chicken breast;165;31\n")))
	assert.Error(t, err)

	_, err = food.NewCatalog(csv.NewReader(strings.NewReader("chicken breast;lots;31;0;3.6\n")))
	assert.Error(t, err)
}

func TestCatalog_Search(t *testing.T) {
	catalog := newTestCatalog(t)

	rice := catalog.Search("rice")
	require.Len(t, rice, 2)
	assert.Equal(t, "brown rice", rice[0].Name)
	assert.Equal(t, "white rice", rice[1].Name)

	// case-insensitive
	chicken := catalog.Search("CHICKEN")
	require.Len(t, chicken, 1)
	assert.Equal(t, 165, chicken[0].Calories)
	assert.Equal(t, 31.0, chicken[0].Protein)

	assert.Empty(t, catalog.Search("pizza"))
	assert.Empty(t, catalog.Search(""))
	assert.Empty(t, catalog.Search("   "))
}
