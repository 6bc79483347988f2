package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProduct_Assign(t *testing.T) {
	p := Product{ID: 3, Name: "Old", Description: "old", Price: 1, Quantity: 1}
	p.Assign(Product{ID: 9, Name: "New", Description: "", Price: 2.5, Quantity: 0})

	assert.Equal(t, Product{ID: 3, Name: "New", Description: "", Price: 2.5, Quantity: 0}, p)
}

func TestProduct_JSONShape(t *testing.T) {
	body, err := json.Marshal(Product{ID: 1, Name: "Widget", Description: "A widget", Price: 9.99, Quantity: 5})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1,"name":"Widget","description":"A widget","price":9.99,"quantity":5}`, string(body))
}
