package service

import (
	"context"
	"sort"

	"abinterior/models"

	"github.com/shopspring/decimal"
)

const topCustomerCount = 5

// Analytics aggregates every customer ledger into dashboard figures.
func (s *LedgerService) Analytics(ctx context.Context) (*models.Analytics, error) {
	customers, err := s.GetCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return BuildAnalytics(customers), nil
}

// BuildAnalytics is the pure part of Analytics.
func BuildAnalytics(customers []models.CustomerWithSummary) *models.Analytics {
	out := &models.Analytics{
		TotalCustomers: len(customers),
		PaymentModes:   []models.ModeShare{},
		TopCustomers:   []models.CustomerTotal{},
		Monthly:        []models.MonthTotals{},
	}

	due, paid := decimal.Zero, decimal.Zero
	modeCount := map[models.PaymentMode]int{}
	modeAmount := map[models.PaymentMode]decimal.Decimal{}
	billed := map[string]decimal.Decimal{}
	collected := map[string]decimal.Decimal{}

	for _, c := range customers {
		due = due.Add(decimal.NewFromFloat(c.TotalDue))
		paid = paid.Add(decimal.NewFromFloat(c.TotalPaid))
		if c.Balance > 0 {
			out.Outstanding++
		} else {
			out.Settled++
		}

		for _, t := range c.Transactions {
			if !(t.Amount > 0) || !t.Type.Valid() {
				continue
			}
			amount := decimal.NewFromFloat(t.Amount)
			month := ""
			if d, err := models.ParseLedgerDate(t.Date); err == nil {
				month = d.Format("2006-01")
			}

			if t.Type == models.Credit {
				modeCount[t.Mode]++
				modeAmount[t.Mode] = modeAmount[t.Mode].Add(amount)
				if month != "" {
					collected[month] = collected[month].Add(amount)
				}
			} else if month != "" {
				billed[month] = billed[month].Add(amount)
			}
		}

		out.TopCustomers = append(out.TopCustomers, models.CustomerTotal{
			ID:       c.ID,
			Name:     c.Name,
			TotalDue: c.TotalDue,
			Balance:  c.Balance,
		})
	}

	out.TotalDue = due.InexactFloat64()
	out.TotalPaid = paid.InexactFloat64()
	out.TotalBalance = due.Sub(paid).InexactFloat64()

	for _, m := range models.PaymentModes {
		if modeCount[m] == 0 {
			continue
		}
		out.PaymentModes = append(out.PaymentModes, models.ModeShare{
			Mode:   m,
			Count:  modeCount[m],
			Amount: modeAmount[m].InexactFloat64(),
		})
	}

	sort.SliceStable(out.TopCustomers, func(i, j int) bool {
		return out.TopCustomers[i].TotalDue > out.TopCustomers[j].TotalDue
	})
	if len(out.TopCustomers) > topCustomerCount {
		out.TopCustomers = out.TopCustomers[:topCustomerCount]
	}

	months := map[string]bool{}
	for m := range billed {
		months[m] = true
	}
	for m := range collected {
		months[m] = true
	}
	for m := range months {
		out.Monthly = append(out.Monthly, models.MonthTotals{
			Month:     m,
			Billed:    billed[m].InexactFloat64(),
			Collected: collected[m].InexactFloat64(),
		})
	}
	sort.Slice(out.Monthly, func(i, j int) bool { return out.Monthly[i].Month < out.Monthly[j].Month })

	return out
}
