package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/CeKulit/cekulit-backend/domain"
	"github.com/PuerkitoBio/goquery"
)

const defaultListingURL = "https://www.sephora.co.id/categories/clean/clean-skincare?q=skin%20care"

var (
	reviewsRe = regexp.MustCompile(`\(\s*(\d+)\s*\)`)
	starsRe   = regexp.MustCompile(`--highlighted-percentage:\s*([\d.]+)%`)
)

type productService struct {
	client     *http.Client
	listingURL string
}

// NewProductService proxies the upstream store's product listing page. The
// page is scraped on every request; the upstream has no public API.
func NewProductService(listingURL string) domain.ProductUseCase {
	if listingURL == "" {
		listingURL = defaultListingURL
	}
	return &productService{
		client:     &http.Client{Timeout: 15 * time.Second},
		listingURL: listingURL,
	}
}

func (s *productService) Search(ctx context.Context, query, desc string) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.listingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}
	// Browser-like headers, the upstream rejects bare clients with a 403.
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/58.0.3029.110 Safari/537.3")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Referer", "https://www.sephora.co.id/")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing returned status %d", resp.StatusCode)
	}

	products, err := parseProducts(resp.Body)
	if err != nil {
		return nil, err
	}

	return filterProducts(products, query, desc), nil
}

func parseProducts(body io.Reader) ([]domain.Product, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	var products []domain.Product
	doc.Find(".products-card-container").Each(func(_ int, sel *goquery.Selection) {
		product := domain.Product{
			Title:  strings.TrimSpace(sel.Find(".brand").Text()),
			Desc:   strings.TrimSpace(sel.Find(".product-name").Text()),
			Poster: sel.Find("img").AttrOr("src", ""),
		}

		if href := strings.TrimSpace(sel.Find(".product-card-description").AttrOr("href", "")); href != "" {
			product.Link = "https://www.sephora.co.id" + href
		}

		if m := reviewsRe.FindStringSubmatch(strings.TrimSpace(sel.Find(".reviews-count").Text())); m != nil {
			product.ReviewsCount, _ = strconv.Atoi(m[1])
		}

		if m := starsRe.FindStringSubmatch(sel.Find(".stars").AttrOr("style", "")); m != nil {
			product.Stars, _ = strconv.ParseFloat(m[1], 64)
		}

		products = append(products, product)
	})

	return products, nil
}

// filterProducts narrows by brand (query) or product description; the brand
// filter wins when both are supplied, matching the original listing proxy.
func filterProducts(products []domain.Product, query, desc string) []domain.Product {
	query = strings.ToLower(query)
	desc = strings.ToLower(desc)

	if query == "" && desc == "" {
		return products
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		switch {
		case query != "" && strings.Contains(strings.ToLower(p.Title), query):
			filtered = append(filtered, p)
		case query == "" && desc != "" && strings.Contains(strings.ToLower(p.Desc), desc):
			filtered = append(filtered, p)
		}
	}
	return filtered
}
