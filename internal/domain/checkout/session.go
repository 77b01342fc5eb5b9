package checkout

import (
	"errors"
	"time"

	"checkout-ledger/internal/domain/ledger"
	"checkout-ledger/internal/domain/loyalty"
	"checkout-ledger/internal/domain/order"
	"checkout-ledger/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrNotLoading   = errors.New("session is not loading")
	ErrNotEditable  = errors.New("session does not accept redemption changes")
	ErrNotSubmitted = errors.New("session has no submission in flight")
	ErrTerminated   = errors.New("session already terminated")
)

type Services struct {
	Clock      clock.Clock
	Calculator *ledger.Calculator
}

// Intent is the redemption intent for one checkout session. AppliedPoints is
// the last successfully validated value and the only field that feeds totals.
type Intent struct {
	Enabled       bool
	RequestedRaw  string
	AppliedPoints int64
}

// Result is emitted once a session succeeds.
type Result struct {
	OrderRef      string
	AmountCharged int64
	PointsApplied int64
}

// Session is the checkout state machine:
//
//	Loading → Ready → Submitting → Confirming → Succeeded
//	                      ↘            ↘
//	                       Failed (back to Ready on next user action)
//
// One session is owned by exactly one checkout visit. All fields are mutated
// only through the named transitions so the ledger invariants hold from a
// single choke point.
type Session struct {
	id       uuid.UUID
	services *Services

	status     Status
	ord        *order.Order
	account    loyalty.Account
	intent     Intent
	totals     ledger.Totals
	failReason string
	result     *Result

	// validationMessage is the last redemption validation failure, kept for
	// the presentation layer until the next successful apply or clear.
	validationMessage string

	// lockedAmount is TotalToPay captured at submit; redemption edits after
	// that point cannot change what the gateway is asked to charge.
	lockedAmount int64

	// epoch guards against late collaborator results: it is bumped on
	// teardown and a submission only lands if the epoch it captured still
	// matches.
	epoch uint64

	createdAt time.Time
	updatedAt time.Time
}

func NewSession(services *Services, id uuid.UUID) *Session {
	now := services.Clock.Now()
	return &Session{
		id:        id,
		services:  services,
		status:    StatusLoading,
		createdAt: now,
		updatedAt: now,
	}
}

// Activate installs the order and loyalty snapshot fetched from the order
// source and computes the initial totals with no redemption applied.
func (s *Session) Activate(ord *order.Order, account loyalty.Account) error {
	if s.status != StatusLoading {
		return ErrNotLoading
	}
	totals, err := s.services.Calculator.ComputeTotals(ord, 0)
	if err != nil {
		return err
	}
	s.ord = ord
	s.account = account
	s.totals = totals
	s.status = StatusReady
	s.touch()
	return nil
}

// ToggleRedemption records the checkbox state. Disabling clears any applied
// redemption immediately; enabling waits for an explicit apply.
func (s *Session) ToggleRedemption(enabled bool) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	s.intent.Enabled = enabled
	if !enabled {
		return s.applyValidated(0)
	}
	s.touch()
	return nil
}

func (s *Session) SetRequestedPoints(raw string) error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	s.intent.RequestedRaw = raw
	s.touch()
	return nil
}

// ApplyRedemption validates the current intent and, on success, reconciles
// the account and recomputes totals. Validation failures leave totals and
// account untouched; the session stays editable either way.
func (s *Session) ApplyRedemption() error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	req := ledger.RedemptionRequest{
		Enabled:      s.intent.Enabled,
		RequestedRaw: s.intent.RequestedRaw,
	}
	applied, err := ledger.ValidateRedemption(req, s.account, s.totals.TotalBeforeDiscount)
	if err != nil {
		s.validationMessage = err.Error()
		s.touch()
		return err
	}
	return s.applyValidated(applied)
}

// ClearRedemption resets the intent entirely and restores the account
// snapshot to its pre-redemption shape.
func (s *Session) ClearRedemption() error {
	if err := s.ensureEditable(); err != nil {
		return err
	}
	if err := s.applyValidated(0); err != nil {
		return err
	}
	s.intent.Enabled = false
	s.intent.RequestedRaw = ""
	return nil
}

// BeginSubmit locks the payable amount and moves to Submitting. Allowed from
// Ready and from Failed (user-initiated retry, redemption preserved).
func (s *Session) BeginSubmit() (int64, error) {
	if err := s.ensureEditable(); err != nil {
		return 0, err
	}
	s.lockedAmount = s.totals.TotalToPay
	s.status = StatusSubmitting
	s.touch()
	return s.lockedAmount, nil
}

func (s *Session) MarkConfirming() error {
	if s.status != StatusSubmitting {
		return ErrNotSubmitted
	}
	s.status = StatusConfirming
	s.touch()
	return nil
}

// Complete makes the session terminal with the final order reference, the
// amount actually charged and the points that were redeemed.
func (s *Session) Complete(orderRef string) error {
	if s.status != StatusConfirming {
		return ErrNotSubmitted
	}
	s.result = &Result{
		OrderRef:      orderRef,
		AmountCharged: s.lockedAmount,
		PointsApplied: s.intent.AppliedPoints,
	}
	s.status = StatusSucceeded
	s.touch()
	return nil
}

// Fail surfaces a collaborator error. The session becomes Failed with a
// human-readable reason; the next user action reopens it as Ready with the
// redemption state intact.
func (s *Session) Fail(reason string) error {
	if s.status != StatusSubmitting && s.status != StatusConfirming {
		return ErrNotSubmitted
	}
	s.failReason = reason
	s.status = StatusFailed
	s.touch()
	return nil
}

// Abandon tears the session down. The epoch bump makes any in-flight
// collaborator result land on a stale epoch and get discarded.
func (s *Session) Abandon() error {
	if s.status.IsTerminal() {
		return ErrTerminated
	}
	s.status = StatusAbandoned
	s.epoch++
	s.touch()
	return nil
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Status() Status { return s.status }

func (s *Session) Order() *order.Order { return s.ord }

func (s *Session) Account() loyalty.Account { return s.account }

func (s *Session) Intent() Intent { return s.intent }

func (s *Session) Totals() ledger.Totals { return s.totals }

func (s *Session) FailReason() string { return s.failReason }

func (s *Session) ValidationMessage() string { return s.validationMessage }

func (s *Session) Result() *Result { return s.result }

func (s *Session) Epoch() uint64 { return s.epoch }

func (s *Session) CreatedAt() time.Time { return s.createdAt }

func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

func (s *Session) applyValidated(applied int64) error {
	totals, err := s.services.Calculator.ComputeTotals(s.ord, applied)
	if err != nil {
		return err
	}
	s.account = loyalty.Reconcile(s.account, s.intent.AppliedPoints, applied)
	s.intent.AppliedPoints = applied
	s.totals = totals
	s.validationMessage = ""
	s.touch()
	return nil
}

// ensureEditable gates every user action on the state machine. A Failed
// session reopens as Ready here, which is the only path back after an error.
func (s *Session) ensureEditable() error {
	switch s.status {
	case StatusReady:
		return nil
	case StatusFailed:
		s.status = StatusReady
		s.failReason = ""
		return nil
	default:
		return ErrNotEditable
	}
}

func (s *Session) touch() {
	s.updatedAt = s.services.Clock.Now()
}
