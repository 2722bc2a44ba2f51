package main

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/quote-manager/internal/models"
)

func TestBuildQuote(t *testing.T) {
	products := []models.Product{
		{BaseModel: models.BaseModel{ID: 1}, Name: "Basic"},
		{BaseModel: models.BaseModel{ID: 2}, Name: "Pro", HasColors: true, Colors: []string{"white", "black"}},
		{BaseModel: models.BaseModel{ID: 3}, Name: "Bracket"},
		{BaseModel: models.BaseModel{ID: 5}, Name: "Kit", IsKit: true, KitComponents: []uint{2, 3}},
	}

	req, err := buildQuote(products, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, req.Items, 3)

	assert.Equal(t, uint(1), req.Items[0].ProductID)
	assert.Equal(t, uint(2), req.Items[1].ProductID)
	assert.Equal(t, 2, *req.Items[1].Quantity)
	assert.Contains(t, products[1].Colors, *req.Items[1].Color)
	assert.Equal(t, []uint{3, 2}, req.Items[2].KitOrder)
	assert.Equal(t, []uint{2, 3}, products[3].KitComponents, "kit defaults are not reordered in place")
	assert.Regexp(t, `^TestUser\d{4}$`, req.Customer)
}

func TestBuildQuoteIncompleteCatalog(t *testing.T) {
	_, err := buildQuote([]models.Product{{Name: "Basic"}}, rand.New(rand.NewSource(1)))
	assert.Error(t, err)
}
