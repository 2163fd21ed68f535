package team_test

import (
	"testing"

	"scouting-hub/core/team"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Display name", "LUJISA GUADALAJARA BASKET", "lujisa_guadalajara_basket"},
		{"Trimmed", "  CB Pinto ", "cb_pinto"},
		{"Separators", "A/B\\C", "a_b_c"},
		{"Traversal", "../etc", "__etc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, team.Slug(tt.in))
		})
	}
}

func TestConfigSlug(t *testing.T) {
	c := team.Config{Name: "Basket Azuqueca"}
	assert.Equal(t, "basket_azuqueca", c.Slug())
}
