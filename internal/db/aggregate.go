package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
)

// aggregateCount runs a store-side COUNT over the query and returns the
// result without pulling documents to the client.
func aggregateCount(ctx context.Context, query firestore.Query) (int64, error) {
	results, err := query.NewAggregationQuery().WithCount("count").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("count aggregation failed: %w", err)
	}
	return aggregationInt(results, "count")
}

// aggregateSum runs a store-side SUM over the named numeric field.
func aggregateSum(ctx context.Context, query firestore.Query, field string) (int64, error) {
	results, err := query.NewAggregationQuery().WithSum(field, "sum").Get(ctx)
	if err != nil {
		return 0, fmt.Errorf("sum aggregation over '%s' failed: %w", field, err)
	}
	return aggregationInt(results, "sum")
}

func aggregationInt(results firestore.AggregationResult, alias string) (int64, error) {
	raw, ok := results[alias]
	if !ok {
		return 0, fmt.Errorf("aggregation alias '%s' missing from result", alias)
	}
	value, ok := raw.(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected aggregation result type %T for alias '%s'", raw, alias)
	}
	// Sums over a mix of int and double fields come back as a double.
	if _, isDouble := value.ValueType.(*firestorepb.Value_DoubleValue); isDouble {
		return int64(value.GetDoubleValue()), nil
	}
	return value.GetIntegerValue(), nil
}
