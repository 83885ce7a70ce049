package keepadomain

import "fmt"

// ProductResponse é a resposta do endpoint /product
type ProductResponse struct {
	Timestamp  int64     `json:"timestamp"`
	TokensLeft int       `json:"tokensLeft"`
	RefillIn   int       `json:"refillIn"`
	RefillRate int       `json:"refillRate"`
	TokensUsed int       `json:"tokensConsumed"`
	Products   []Product `json:"products"`
}

type Product struct {
	ASIN      string `json:"asin"`
	Title     string `json:"title"`
	ImagesCSV string `json:"imagesCSV"`
}

// ImageLookup é o resultado da busca de imagem de um ASIN
type ImageLookup struct {
	ASIN       string
	ImageURL   string
	TokensLeft int
}

func (l *ImageLookup) Found() bool {
	return l != nil && l.ImageURL != ""
}

// APIError representa uma resposta de erro do Keepa
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("keepa %d: %s", e.StatusCode, e.Body)
}

// IsRateLimited indica que o Keepa recusou a chamada por falta de tokens
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}
