package format

type Status string

const (
	StockLow    Status = "low"
	StockMedium Status = "medium"
	StockGood   Status = "good"
)

// StockStatus classifies stock against its minimum. Both thresholds are
// inclusive: stock == minStock is low, stock == 2*minStock is medium.
func StockStatus(stock, minStock int64) Status {
	if stock <= minStock {
		return StockLow
	}
	if stock <= minStock*2 {
		return StockMedium
	}
	return StockGood
}

func StockColor(status Status) string {
	switch status {
	case StockLow:
		return "#EF4444"
	case StockMedium:
		return "#F59E0B"
	case StockGood:
		return "#10B981"
	default:
		return "#6B7280"
	}
}
