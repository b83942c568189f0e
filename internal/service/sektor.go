package service

import (
	"context"
	"fmt"
	"sort"

	"asetgraph/internal/datasource"
	"asetgraph/internal/domain"
)

// Fields aggregated by StatsByCategory
const (
	CategoryField = "category"
	BudgetField   = "budget"
)

// SektorAPI is the sektor document datasource plus category statistics
type SektorAPI struct {
	*datasource.Base
}

func NewSektorAPI(base *datasource.Base) *SektorAPI {
	return &SektorAPI{Base: base}
}

// StatsByCategory groups every sektor by category. Documents with a missing or
// empty category share one Uncategorized bucket; a missing or non-numeric budget
// counts as zero. Results are sorted by category.
func (a *SektorAPI) StatsByCategory(ctx context.Context) ([]domain.CategoryStats, error) {
	docs, err := a.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	return aggregateByCategory(docs), nil
}

func aggregateByCategory(docs []domain.Document) []domain.CategoryStats {
	buckets := make(map[string]*domain.CategoryStats)
	for _, doc := range docs {
		category := categoryOf(doc[CategoryField])
		b, ok := buckets[category]
		if !ok {
			b = &domain.CategoryStats{Category: category}
			buckets[category] = b
		}
		b.Count++
		if budget, ok := doc.Float(BudgetField); ok {
			b.TotalBudget += budget
		}
	}

	out := make([]domain.CategoryStats, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

func categoryOf(v any) string {
	switch c := v.(type) {
	case nil:
		return domain.UncategorizedLabel
	case string:
		if c == "" {
			return domain.UncategorizedLabel
		}
		return c
	case bool:
		if !c {
			return domain.UncategorizedLabel
		}
	}
	if f, ok := domain.ToFloat(v); ok && f == 0 {
		return domain.UncategorizedLabel
	}
	return fmt.Sprint(v)
}
