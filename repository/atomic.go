package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// Atomic groups several repository writes. With transactions enabled the
// writes share one MongoDB transaction, which requires a replica set.
// Otherwise fn simply runs and its writes are applied one after another.
type Atomic struct {
	client  *mongo.Client
	enabled bool
}

func NewAtomic(client *mongo.Client, enabled bool) *Atomic {
	return &Atomic{client: client, enabled: enabled}
}

// Run executes fn. Repositories called with the ctx handed to fn take part
// in the transaction.
func (a *Atomic) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if a == nil || !a.enabled {
		return fn(ctx)
	}

	session, err := a.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
