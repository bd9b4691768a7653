package gokeyset

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/clause"
)

func Test_OrderBy_Dedup(t *testing.T) {
	order := OrderBy(usersSlug, usersID, usersSlug, Raw("lower(users.slug)"))

	require.Equal(
		t,
		Order{
			{Table: "users", Name: "slug"},
			{Table: "users", Name: "id"},
			{Name: "lower(users.slug)", Raw: true},
		},
		order,
	)
	require.Equal(t, []clause.Column(order), order.Columns())
}

func Test_Order_validate(t *testing.T) {
	tests := []struct {
		name string
		ord  Order
		ok   bool
	}{
		{"empty returns error", Order{}, false},
		{"nil returns error", nil, false},
		{"empty column name", Order{{Table: "users"}}, false},
		{"forbidden symbols", Order{{Name: "id; --"}}, false},
		{"forbidden symbols in table", Order{{Table: "users u", Name: "id"}}, false},
		{"empty raw expression", Order{{Name: " ", Raw: true}}, false},
		{"raw expression is not checked", Order{{Name: "lower(slug)", Raw: true}}, true},
		{"valid list", Order{{Table: "users", Name: "slug"}, {Name: "id"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.ord.validate(); (err == nil) != tt.ok {
				t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
			}
		})
	}
}

func Test_ParseOrder(t *testing.T) {
	mapping := ColumnMapping{
		"id":   "t.id",
		"name": "t.name",
		"age":  "age",
	}

	tests := []struct {
		name  string
		in    []string
		ok    bool
		first clause.Column
	}{
		{"invalid format", []string{"id asc extra"}, false, clause.Column{}},
		{"blank string", []string{"  "}, false, clause.Column{}},
		{"unknown alias", []string{"idx asc"}, false, clause.Column{}},
		{"descending is rejected", []string{"name desc"}, false, clause.Column{}},
		{"bare column", []string{"id"}, true, clause.Column{Table: "t", Name: "id"}},
		{"valid asc", []string{"name ASC"}, true, clause.Column{Table: "t", Name: "name"}},
		{"unqualified mapping", []string{"age asc", "id"}, true, clause.Column{Name: "age"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrder(tt.in, mapping)
			if (err == nil) != tt.ok {
				t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
				return
			}
			if tt.ok {
				if len(got) == 0 || got[0] != tt.first {
					t.Errorf("%s: first=%v want %v", tt.name, got, tt.first)
				}
			}
		})
	}

	t.Run("descending error is typed", func(t *testing.T) {
		_, err := ParseOrder([]string{"id desc"}, mapping)
		require.ErrorIs(t, err, ErrUnsupportedDirection)
	})

	t.Run("closest alias is suggested", func(t *testing.T) {
		_, err := ParseOrder([]string{"nme"}, mapping)
		require.ErrorContains(t, err, "closest: 'name'")
	})
}

func Test_closestAlias(t *testing.T) {
	tests := []struct {
		name  string
		input string
		set   []string
		want  string
	}{
		{"exact", "id", []string{"id", "name"}, "id"},
		{"typo", "nmae", []string{"id", "name", "email"}, "name"},
		{"empty set", "id", nil, ""},
		{"tie is resolved alphabetically", "ab", []string{"ac", "aa"}, "aa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := closestAlias(tt.input, tt.set); got != tt.want {
				t.Errorf("%s: got %q want %q", tt.name, got, tt.want)
			}
		})
	}
}
