package aggregates

// Contract names an aggregate and the invariant its writes hold at every commit.
// OwnsTx is true when each write method opens and finishes its own transaction.
type Contract struct {
	Name      string
	OwnsTx    bool
	Invariant string
}

// Aggregate is implemented by every aggregate so callers can inspect its contract.
type Aggregate interface {
	Contract() Contract
}

// RequiresAggregateOwnedTx reports whether callers must not wrap writes in an outer transaction.
func (c Contract) RequiresAggregateOwnedTx() bool {
	return c.OwnsTx
}
