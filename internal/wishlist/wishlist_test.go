package wishlist

import (
	"testing"

	"github.com/PattyWambere/KapeeFrontend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestToggleAddsAndRemoves(t *testing.T) {
	s := NewStore()
	headphones := models.Product{ID: "p1", Name: "Wireless Headphones", Price: 89.99}

	s.Toggle(headphones)
	assert.True(t, s.Contains("p1"))
	assert.Equal(t, 1, s.Len())

	// Toggling again restores the original membership.
	s.Toggle(headphones)
	assert.False(t, s.Contains("p1"))
	assert.Equal(t, 0, s.Len())
}

func TestToggleKeepsOtherEntries(t *testing.T) {
	s := NewStore()
	s.Toggle(models.Product{ID: "p1", Name: "Headphones"})
	s.Toggle(models.Product{ID: "p2", Name: "Watch"})
	s.Toggle(models.Product{ID: "p3", Name: "Speaker"})

	s.Toggle(models.Product{ID: "p2", Name: "Watch"})

	assert.True(t, s.Contains("p1"))
	assert.False(t, s.Contains("p2"))
	assert.True(t, s.Contains("p3"))
	assert.Equal(t, 2, s.Len())
}

func TestProductsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Toggle(models.Product{ID: "p1", Name: "Headphones"})

	out := s.Products()
	out[0].Name = "mutated"

	assert.Equal(t, "Headphones", s.Products()[0].Name)
}
