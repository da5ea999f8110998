package services

import (
	"testing"

	"journey-synthesis-service/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestFilterCandidates(t *testing.T) {
	good := testPlace("good", "museum", origin)

	closed := testPlace("closed", "museum", origin)
	closed.BusinessStatus = "CLOSED_PERMANENTLY"

	bank := testPlace("bank", "bank", origin)

	corporate := testPlace("corp", "tourist_attraction", origin)
	corporate.Name = "Acme Logistics HQ"

	lowRated := testPlace("low", "cafe", origin)
	lowRated.Rating = 3.6

	fewReviews := testPlace("few", "cafe", origin)
	fewReviews.ReviewCount = 9

	quietPark := testPlace("quiet-park", "park", origin)
	quietPark.ReviewCount = 9

	genericStore := testPlace("bookshop", "book_store", origin)
	genericStore.Categories = []string{"book_store", "store"}

	out := FilterCandidates([]domain.Place{good, closed, bank, corporate, lowRated, fewReviews, quietPark, genericStore})

	var ids []string
	for _, p := range out {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"good", "quiet-park", "bookshop"}, ids)
}

func TestFilterCandidatesKeepsInputOrder(t *testing.T) {
	in := []domain.Place{
		testPlace("c", "cafe", origin),
		testPlace("a", "park", origin),
		testPlace("b", "museum", origin),
	}
	out := FilterCandidates(in)
	assert.Equal(t, in, out)
}
