package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"alumnidir/internal/model"
)

func directory() []model.Profile {
	return []model.Profile{
		{ID: "1", Name: "Ana Souza", Course: "Ciência da Computação", GraduationYear: "2019", Verified: true},
		{ID: "2", Name: "Bruno Lima", Course: "Sistemas de Informação", GraduationYear: "2020", Verified: true},
		{ID: "3", Name: "Carla Dias", Course: "Ciência da Computação", GraduationYear: "2020", Verified: false},
		{ID: "4", Name: "Daniel Anaya", Course: "Engenharia de Software", GraduationYear: "2015.2", Verified: true},
	}
}

func ids(profiles []model.Profile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.ID)
	}
	return out
}

func TestVisible(t *testing.T) {
	assert.Equal(t, []string{"1", "2", "4"}, ids(Visible(directory(), false)))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(Visible(directory(), true)))
	assert.Empty(t, Visible(nil, true))
}

func TestSuggest(t *testing.T) {
	tests := []struct {
		name string
		q    string
		want []string
	}{
		{"empty query", "", []string{}},
		{"whitespace query", "   ", []string{}},
		{"name match ignores case", "ANA", []string{"1", "4"}},
		{"course match", "sistemas", []string{"2"}},
		{"name or course", "ci", []string{"1", "3"}},
		{"no match", "zzz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Suggest(directory(), tt.q)))
		})
	}
}

func TestSuggest_CapsAtLimit(t *testing.T) {
	var snapshot []model.Profile
	for i := 0; i < 20; i++ {
		snapshot = append(snapshot, model.Profile{ID: fmt.Sprint(i), Name: fmt.Sprintf("Maria %d", i)})
	}
	got := Suggest(snapshot, "maria")
	assert.Len(t, got, SuggestionLimit)
	assert.Equal(t, "0", got[0].ID)
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		f    Filters
		want []string
	}{
		{"no filters returns everything", Filters{}, []string{"1", "2", "3", "4"}},
		{"course is exact", Filters{Course: "Ciência da Computação"}, []string{"1", "3"}},
		{"course prefix does not match", Filters{Course: "Ciência"}, []string{}},
		{"year is substring", Filters{Year: "2015"}, []string{"4"}},
		{"conjunctive", Filters{Course: "Ciência da Computação", Year: "2020"}, []string{"3"}},
		{"query and year", Filters{Query: "a", Year: "2020"}, []string{"2", "3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(directory(), tt.f)))
		})
	}
}

func TestRecent(t *testing.T) {
	assert.Equal(t, []string{"1", "2"}, ids(Recent(directory(), 2)))
	assert.Len(t, Recent(directory(), 0), 4)
	assert.Len(t, Recent(directory(), 50), 4)

	got := Recent(directory(), 1)
	got[0].Name = "changed"
	assert.Equal(t, "Ana Souza", directory()[0].Name)
}

func TestCanView(t *testing.T) {
	verified := model.Profile{ID: "1", Verified: true}
	pending := model.Profile{ID: "2"}

	tests := []struct {
		name   string
		p      model.Profile
		admin  bool
		viewer string
		want   bool
	}{
		{"verified to anyone", verified, false, "", true},
		{"unverified hidden from anonymous", pending, false, "", false},
		{"unverified hidden from other alumni", pending, false, "1", false},
		{"unverified shown to owner", pending, false, "2", true},
		{"unverified shown to admin", pending, true, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanView(tt.p, tt.admin, tt.viewer))
		})
	}
}
