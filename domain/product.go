package domain

import "context"

// Product is one scraped listing entry from the upstream store page.
type Product struct {
	Title        string  `json:"title"`
	Poster       string  `json:"poster"`
	Desc         string  `json:"desc"`
	Stars        float64 `json:"stars"`
	ReviewsCount int     `json:"reviews_count"`
	Link         string  `json:"link"`
}

type ProductUseCase interface {
	Search(ctx context.Context, query, desc string) ([]Product, error)
}
