package cart

import (
	"sort"

	"github.com/dolevhayut/mineral-gas-sub001/models"
)

// SummaryLine is one projected order line.
type SummaryLine struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	DeliveryDay string  `json:"delivery_day"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// Summary is the flat projection of a selection against a product list.
type Summary struct {
	Lines []SummaryLine `json:"lines"`
	Total float64       `json:"total"`
}

// dayRank fixes iteration order so two summaries of the same selection
// are always identical, regardless of map order.
var dayRank = map[string]int{
	models.DeliveryDayASAP: 0,
	"sunday":               1,
	"monday":               2,
	"tuesday":              3,
	"wednesday":            4,
	"thursday":             5,
	"friday":               6,
	"saturday":             7,
}

// BuildSummary projects the selection onto the given products. Products
// that are no longer resolvable and non-positive quantities are dropped
// silently. Pure: no side effects, safe to call repeatedly.
func BuildSummary(sel *Selection, products []models.Product) Summary {
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var lines []SummaryLine
	for productID, days := range sel.quantities {
		product, ok := byID[productID]
		if !ok {
			continue
		}
		for day, qty := range days {
			if qty <= 0 {
				continue
			}
			lines = append(lines, SummaryLine{
				ProductID:   productID,
				ProductName: product.Name,
				DeliveryDay: day,
				Quantity:    qty,
				UnitPrice:   product.Price,
				LineTotal:   product.Price * float64(qty),
			})
		}
	}

	sort.Slice(lines, func(i, j int) bool {
		if lines[i].ProductID != lines[j].ProductID {
			return lines[i].ProductID < lines[j].ProductID
		}
		return dayRank[lines[i].DeliveryDay] < dayRank[lines[j].DeliveryDay]
	})

	summary := Summary{Lines: lines}
	for _, l := range lines {
		summary.Total += l.LineTotal
	}
	return summary
}
