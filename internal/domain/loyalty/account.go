package loyalty

import "errors"

var ErrNegativePoints = errors.New("points cannot be negative")

// Account is a loyalty account snapshot as seen by one checkout session.
// It is a value: reconciliation produces a new snapshot, never mutates.
type Account struct {
	pointsBalance  int64
	pointsRedeemed int64
	lifetimePoints int64
}

func NewAccount(pointsBalance, pointsRedeemed, lifetimePoints int64) (Account, error) {
	if pointsBalance < 0 || pointsRedeemed < 0 || lifetimePoints < 0 {
		return Account{}, ErrNegativePoints
	}
	return Account{
		pointsBalance:  pointsBalance,
		pointsRedeemed: pointsRedeemed,
		lifetimePoints: lifetimePoints,
	}, nil
}

func (a Account) PointsBalance() int64 {
	return a.pointsBalance
}

func (a Account) PointsRedeemed() int64 {
	return a.pointsRedeemed
}

// LifetimePoints is only ever changed by earning, never by redemption.
func (a Account) LifetimePoints() int64 {
	return a.lifetimePoints
}

// Reconcile replaces a previously applied redemption with a new one without
// double-counting. The balance is first restored as if no redemption were
// applied, then the new amount is deducted. Calls must chain: previousApplied
// is the amount produced by the prior reconcile, so a sequence of redemption
// changes forms a linear history of one intent superseding the last.
func Reconcile(a Account, previousApplied, newApplied int64) Account {
	previousBalance := a.pointsBalance + previousApplied

	newBalance := previousBalance - newApplied
	if newBalance < 0 {
		newBalance = 0
	}

	newRedeemed := a.pointsRedeemed + (newApplied - previousApplied)
	if newRedeemed < 0 {
		newRedeemed = 0
	}

	return Account{
		pointsBalance:  newBalance,
		pointsRedeemed: newRedeemed,
		lifetimePoints: a.lifetimePoints,
	}
}
