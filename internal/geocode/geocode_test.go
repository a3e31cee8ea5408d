package geocode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/traveler-app/backend/internal/geocode"
)

func TestBuildQueries(t *testing.T) {
	tests := []struct {
		name    string
		address string
		park    string
		city    string
		state   string
		zip     string
		want    []string
	}{
		{
			name:  "park city state",
			park:  "Blue Camp",
			city:  "Austin",
			state: "TX",
			want: []string{
				"Blue Camp, Austin, TX, USA",
				"Austin, TX, USA",
				"Blue Camp, TX, USA",
				"Austin, USA",
			},
		},
		{
			name:    "address preferred over park in first tier",
			address: "123 Main St",
			park:    "Blue Camp",
			city:    "Austin",
			state:   "TX",
			zip:     "78701",
			want: []string{
				"123 Main St, Austin, TX, 78701, USA",
				"Austin, TX, USA",
				"Blue Camp, TX, USA",
				"Austin, USA",
			},
		},
		{
			name: "city only",
			city: "Austin",
			want: []string{"Austin, USA"},
		},
		{
			name:  "duplicate tiers collapse",
			city:  "Austin",
			state: "TX",
			want: []string{
				"Austin, TX, USA",
				"Austin, USA",
			},
		},
		{
			name: "all blank",
			want: nil,
		},
		{
			name:  "existing country marker keeps suffix off",
			park:  "Jasper Camp",
			city:  "Jasper",
			state: "AB",
			zip:   "Canada",
			want: []string{
				"Jasper Camp, Jasper, AB, Canada",
				"Jasper, AB, USA",
				"Jasper Camp, AB, USA",
				"Jasper, USA",
			},
		},
		{
			name: "usa already present",
			city: "Austin USA",
			want: []string{"Austin USA"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := geocode.BuildQueries(tt.address, tt.park, tt.city, tt.state, tt.zip)
			assert.Equal(t, tt.want, got)
		})
	}
}
