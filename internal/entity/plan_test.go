package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFindPlanByName - os 3 kits do funil com seus hashes reais
func TestFindPlanByName(t *testing.T) {
	cases := []struct {
		name  string
		price float64
		hash  string
	}{
		{"Kit 3 Meses", 123.90, "prod_d6a5ebe96b2eb490"},
		{"Kit 5 Meses", 167.90, "prod_9dc131fea65a345d"},
		{"Kit 12 Meses", 227.90, "prod_c5e1a25852bd498a"},
	}

	for _, c := range cases {
		plan, err := FindPlanByName(c.name)
		assert.NoError(t, err)
		assert.Equal(t, c.price, plan.PriceBRL)
		assert.Equal(t, c.hash, plan.ProductHash)
	}
}

// TestFindPlanByNameUnknown
func TestFindPlanByNameUnknown(t *testing.T) {
	plan, err := FindPlanByName("Kit 99 Meses")
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, ErrPlanNotFound)
}

// TestPlanHashNotExposed - o hash do gateway não vaza pro front
func TestPlanHashNotExposed(t *testing.T) {
	body, err := json.Marshal(Plans)
	assert.NoError(t, err)
	assert.NotContains(t, string(body), "prod_")
}
