package store

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Executor runs queries and degrades gracefully when the backend rejects a
// compound filter+sort query because its composite index has not been
// provisioned. Index provisioning is a deployment concern; user-facing reads
// should not fail on it.
type Executor struct {
	store Store
	log   *zap.Logger
}

func NewExecutor(s Store, log *zap.Logger) *Executor {
	return &Executor{store: s, log: log}
}

// Run executes the query as given. If the backend reports a missing index,
// it retries without the sort clause and orders the results in memory by the
// requested field. Any other failure propagates unchanged.
func (e *Executor) Run(ctx context.Context, q Query) ([]Document, error) {
	docs, err := e.store.Run(ctx, q)
	if err == nil || q.OrderBy == "" {
		return docs, err
	}

	if !IsMissingIndex(err) {
		return nil, err
	}

	e.log.Warn("missing composite index, fetching without sorting",
		zap.String("collection", q.Collection),
		zap.String("order_by", q.OrderBy),
		zap.Error(err),
	)

	unordered := q
	unordered.OrderBy = ""
	docs, err = e.store.Run(ctx, unordered)
	if err != nil {
		return nil, err
	}

	SortByTimestamp(docs, q.OrderBy, q.Desc)
	return docs, nil
}

// IsMissingIndex reports whether an error is the backend's rejection of a
// query that needs an unprovisioned composite index.
func IsMissingIndex(err error) bool {
	if err == nil {
		return false
	}
	if status.Code(err) == codes.FailedPrecondition {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "index")
}

// SortByTimestamp orders documents in place by a timestamp-valued field.
// Documents missing the field compare as "now".
func SortByTimestamp(docs []Document, field string, desc bool) {
	sort.SliceStable(docs, func(i, j int) bool {
		ti := timeOf(docs[i].Data[field])
		tj := timeOf(docs[j].Data[field])
		if desc {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
}
