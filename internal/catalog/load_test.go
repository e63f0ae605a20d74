package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	csvData := strings.Join([]string{
		`scheme_name,details,eligibility,Unnamed: 3,tags`,
		`Farmer Subsidy,"<p>Crop input <b>support</b></p>",Farmers with land,junk,"agriculture,farmer"`,
		`Senior Pension,Monthly pension,Citizens above 60`,
	}, "\n")

	recs, err := ReadCSV(strings.NewReader(csvData), "")
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Farmer Subsidy", recs[0].SchemeName)
	assert.Equal(t, "Crop input support", recs[0].Details, "HTML should flatten to text")
	assert.Equal(t, "agriculture,farmer", recs[0].Tags)

	// Ragged second row: missing columns come back empty, not broken.
	assert.Equal(t, "Senior Pension", recs[1].SchemeName)
	assert.Equal(t, "Citizens above 60", recs[1].Eligibility)
	assert.Equal(t, "", recs[1].Tags)

	// No popularity column: every record keeps the 1.0 default.
	assert.Equal(t, 1.0, recs[0].Popularity)
	assert.Equal(t, 1.0, recs[1].Popularity)
}

func TestReadCSVPopularityColumn(t *testing.T) {
	csvData := strings.Join([]string{
		`scheme_name,views`,
		`A,100`,
		`B,50`,
		`C,not-a-number`,
	}, "\n")

	recs, err := ReadCSV(strings.NewReader(csvData), "views")
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.InDelta(t, 1.0, recs[0].Popularity, 1e-6)
	assert.InDelta(t, 0.5, recs[1].Popularity, 1e-6)
	assert.InDelta(t, 0.0, recs[2].Popularity, 1e-6, "unparsable counts score as zero")
}

func TestDerivePopularityConstantColumn(t *testing.T) {
	recs := []Record{{SchemeName: "A"}, {SchemeName: "B"}}
	DerivePopularity(recs, []string{"7", "7"})
	// Epsilon guard: constant column maps to ~0 without dividing by zero.
	assert.InDelta(t, 0.0, recs[0].Popularity, 1e-6)
	assert.InDelta(t, 0.0, recs[1].Popularity, 1e-6)
}

func TestDocument(t *testing.T) {
	rec := Record{
		SchemeName:  "Widow Pension",
		Details:     "Monthly support",
		Eligibility: "Widows above 18",
	}
	doc := Document(rec, []string{"scheme_name", "eligibility"})
	assert.Equal(t, "Widow Pension \n Widows above 18", doc)

	// Unknown columns degrade to empty text.
	doc = Document(rec, []string{"scheme_name", "no_such_column"})
	assert.Equal(t, "Widow Pension \n ", doc)
}

func TestEligibilityText(t *testing.T) {
	rec := Record{
		SchemeName:  "Crèche Support",
		Eligibility: "Working MOTHERS",
		Tags:        "women,child",
	}
	text := EligibilityText(rec)
	assert.Contains(t, text, "working mothers")
	assert.Contains(t, text, "creche support")
	assert.Contains(t, text, "women,child")
	assert.NotContains(t, text, "MOTHERS")
}
