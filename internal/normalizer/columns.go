package normalizer

import (
	"regexp"
	"strings"
)

var (
	parenthesisPattern = regexp.MustCompile(`\([^)]*\)`)
	nonAlphanumeric    = regexp.MustCompile(`[^a-z0-9]+`)
)

var (
	dateAliases        = []string{"Date"}
	asinAliases        = []string{"ASIN"}
	skuAliases         = []string{"SKU"}
	marketplaceAliases = []string{"Marketplace", "Market"}
	titleAliases       = []string{"Product", "Title", "Name", "Product Name"}
	categoryAliases    = []string{"Category", "Product Group"}
	netProfitAliases   = []string{"NetProfit", "Net profit"}
	roiAliases         = []string{"ROI"}
	totalCostAliases   = []string{"Cost of Goods", "CostOfGoods", "COGS"}
	summaryUnitAliases = []string{"Units", "Units sold"}
	summarySaleAliases = []string{"Sales", "Revenue"}

	// Colunas por canal de receita da exportação diária
	dailyUnitColumns  = []string{"UnitsOrganic", "UnitsPPC", "UnitsSponsoredProducts", "UnitsSponsoredDisplay"}
	dailySalesColumns = []string{"SalesOrganic", "SalesPPC", "SalesSponsoredProducts", "SalesSponsoredDisplay"}
)

// canonicalHeader remove sufixos entre parênteses, caixa e pontuação.
// "Units (Last 30 days)" e "units" resolvem para a mesma coluna.
func canonicalHeader(h string) string {
	h = parenthesisPattern.ReplaceAllString(h, "")
	return nonAlphanumeric.ReplaceAllString(strings.ToLower(h), "")
}

// columnSet guarda o nome real de cada coluna lógica, resolvido uma vez por arquivo
type columnSet struct {
	date        string
	asin        string
	sku         string
	marketplace string
	title       string
	category    string
	netProfit   string
	roi         string
	totalCost   string
	units       string
	sales       string
	dailyUnits  []string
	dailySales  []string
}

func resolveColumns(headers []string) columnSet {
	index := make(map[string]string, len(headers))
	for _, h := range headers {
		key := canonicalHeader(h)
		if _, exists := index[key]; !exists && key != "" {
			index[key] = h
		}
	}

	find := func(aliases []string) string {
		for _, alias := range aliases {
			if h, ok := index[canonicalHeader(alias)]; ok {
				return h
			}
		}
		return ""
	}

	findAll := func(names []string) []string {
		found := make([]string, 0, len(names))
		for _, name := range names {
			if h, ok := index[canonicalHeader(name)]; ok {
				found = append(found, h)
			}
		}
		return found
	}

	return columnSet{
		date:        find(dateAliases),
		asin:        find(asinAliases),
		sku:         find(skuAliases),
		marketplace: find(marketplaceAliases),
		title:       find(titleAliases),
		category:    find(categoryAliases),
		netProfit:   find(netProfitAliases),
		roi:         find(roiAliases),
		totalCost:   find(totalCostAliases),
		units:       find(summaryUnitAliases),
		sales:       find(summarySaleAliases),
		dailyUnits:  findAll(dailyUnitColumns),
		dailySales:  findAll(dailySalesColumns),
	}
}

func value(rec map[string]string, column string) string {
	if column == "" {
		return ""
	}
	return strings.TrimSpace(rec[column])
}

func values(rec map[string]string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = value(rec, c)
	}
	return out
}
