package normalizer

import "strings"

const DefaultMarketplace = "DE"

var marketplaceByDomain = map[string]string{
	"amazon.de":     "DE",
	"amazon.co.uk":  "UK",
	"amazon.fr":     "FR",
	"amazon.it":     "IT",
	"amazon.es":     "ES",
	"amazon.com":    "US",
	"amazon.ca":     "CA",
	"amazon.com.mx": "MX",
	"amazon.co.jp":  "JP",
	"amazon.com.au": "AU",
	"amazon.nl":     "NL",
	"amazon.com.be": "BE",
	"amazon.pl":     "PL",
	"amazon.se":     "SE",
	"amazon.ie":     "IE",
}

var knownMarketplaces = map[string]bool{
	"DE": true, "UK": true, "FR": true, "IT": true, "ES": true,
	"US": true, "CA": true, "MX": true, "JP": true, "AU": true,
	"NL": true, "BE": true, "PL": true, "SE": true, "IE": true,
}

// MapMarketplace converte o marketplace da exportação para o código de duas letras.
// Valores desconhecidos caem no marketplace padrão.
func MapMarketplace(value string) string {
	v := strings.ToLower(strings.TrimSpace(value))
	v = strings.TrimPrefix(v, "https://")
	v = strings.TrimPrefix(v, "http://")
	v = strings.TrimPrefix(v, "www.")
	v = strings.TrimSuffix(v, "/")

	if code, ok := marketplaceByDomain[v]; ok {
		return code
	}

	upper := strings.ToUpper(v)
	if upper == "GB" {
		return "UK"
	}
	if knownMarketplaces[upper] {
		return upper
	}

	return DefaultMarketplace
}

// categoryCodes mantém a ordem usada na busca parcial
var categoryCodes = []struct {
	name string
	code string
}{
	{"Electronics", "electronics"},
	{"Computers & Accessories", "electronics"},
	{"Cell Phones & Accessories", "electronics"},
	{"Home & Kitchen", "home"},
	{"Kitchen & Dining", "home"},
	{"Sports & Outdoors", "sports"},
	{"Toys & Games", "toys"},
	{"Beauty & Personal Care", "beauty"},
	{"Health & Household", "beauty"},
	{"Clothing, Shoes & Jewelry", "fashion"},
	{"Books", "books"},
	{"Office Products", "office"},
	{"Automotive", "automotive"},
	{"Tools & Home Improvement", "tools"},
	{"Garden & Outdoor", "garden"},
	{"Pet Supplies", "pets"},
	{"Baby", "baby"},
}

// MapCategory simplifica a categoria: primeiro busca exata, depois parcial
func MapCategory(value string) string {
	v := strings.TrimSpace(value)
	if v == "" {
		return "other"
	}

	for _, c := range categoryCodes {
		if c.name == v {
			return c.code
		}
	}
	for _, c := range categoryCodes {
		if strings.Contains(v, c.name) {
			return c.code
		}
	}

	return "other"
}
