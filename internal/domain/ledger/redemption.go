package ledger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"checkout-ledger/internal/domain/loyalty"
)

var (
	ErrInvalidInput = errors.New("requested points must be a whole non-negative number")
	ErrZeroPoints   = errors.New("requested points must be greater than zero")
)

// ExceedsMaxError carries the computed ceiling so the caller can show it.
type ExceedsMaxError struct {
	AllowedMax int64
}

func (e *ExceedsMaxError) Error() string {
	return fmt.Sprintf("requested points exceed the maximum of %d", e.AllowedMax)
}

// RedemptionRequest is the user's redemption intent as typed: the checkbox
// state and the raw text of the points field.
type RedemptionRequest struct {
	Enabled      bool
	RequestedRaw string
}

// ValidateRedemption decides how many points a request may apply. Points are
// capped by both the account balance and the order's pre-discount total: a
// redemption can never exceed what the order costs. Pure validation, the
// caller applies the result.
//
// A disabled request always succeeds with zero points, clearing any prior
// redemption regardless of what the points field holds.
func ValidateRedemption(req RedemptionRequest, account loyalty.Account, totalBeforeDiscount int64) (int64, error) {
	if !req.Enabled {
		return 0, nil
	}

	raw := strings.TrimSpace(req.RequestedRaw)
	if raw == "" {
		return 0, ErrInvalidInput
	}
	requested, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || requested < 0 {
		return 0, ErrInvalidInput
	}
	if requested == 0 {
		return 0, ErrZeroPoints
	}

	allowedMax := account.PointsBalance()
	if totalBeforeDiscount < allowedMax {
		allowedMax = totalBeforeDiscount
	}
	if allowedMax < 0 {
		allowedMax = 0
	}

	if requested > allowedMax {
		return 0, &ExceedsMaxError{AllowedMax: allowedMax}
	}
	return requested, nil
}
