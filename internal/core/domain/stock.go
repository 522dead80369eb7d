package domain

// A StockStatus is the urgency classification of a product's
// current stock against its reorder policy.
type StockStatus int

const (
	StockNormal StockStatus = iota
	StockLow
	StockOutOfStock
)

func (s StockStatus) String() string {
	switch s {
	case StockNormal:
		return "Normal"
	case StockLow:
		return "Low"
	case StockOutOfStock:
		return "OutOfStock"
	default:
		return "Unknown"
	}
}

type Classification struct {
	Status  StockStatus
	Reorder bool
}

// Classify evaluates a product's replenishment urgency.
//
// A known predicted-days-left of zero always means OutOfStock,
// regardless of the store's own reorder flag. A nil
// PredictedDaysLeft is "unknown", not an error.
func Classify(p Product) Classification {
	if p.PredictedDaysLeft != nil && *p.PredictedDaysLeft == 0 {
		return Classification{Status: StockOutOfStock, Reorder: true}
	}
	if p.NeedsReorder {
		return Classification{Status: StockLow, Reorder: true}
	}
	return Classification{Status: StockNormal}
}

// Alerts holds the reorder alert buckets for display.
type Alerts struct {
	OutOfStock []Product
	Low        []Product
}

// PartitionAlerts splits products needing reorder into the
// out-of-stock and low-stock buckets, preserving input order
// within each bucket.
func PartitionAlerts(ps []Product) Alerts {
	var a Alerts
	for _, p := range ps {
		switch Classify(p).Status {
		case StockOutOfStock:
			a.OutOfStock = append(a.OutOfStock, p)
		case StockLow:
			a.Low = append(a.Low, p)
		}
	}
	return a
}
