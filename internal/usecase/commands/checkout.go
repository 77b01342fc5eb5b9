package commands

import (
	"context"
	"errors"

	"checkout-ledger/internal/domain/checkout"
	"checkout-ledger/internal/pkg/errs"

	"github.com/google/uuid"
)

const genericGatewayMessage = "payment could not be completed, please try again"

type CheckoutCommands interface {
	Start(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error)
	ToggleRedemption(sessionID uuid.UUID, enabled bool) error
	SetRequestedPoints(sessionID uuid.UUID, raw string) error
	Apply(sessionID uuid.UUID) error
	Clear(sessionID uuid.UUID) error
	Submit(ctx context.Context, sessionID uuid.UUID, card CardInput) (*checkout.Result, error)
	Abandon(sessionID uuid.UUID) error
}

type checkoutUseCaseImpl struct {
	sessions SessionRepository
	source   OrderSource
	gateway  PaymentGateway
	services *checkout.Services
}

func NewCheckoutUseCase(
	sessions SessionRepository,
	source OrderSource,
	gateway PaymentGateway,
	services *checkout.Services,
) CheckoutCommands {
	return &checkoutUseCaseImpl{
		sessions: sessions,
		source:   source,
		gateway:  gateway,
		services: services,
	}
}

// Start fetches order and loyalty data and registers a Ready session. A source
// failure is fatal: no session is registered and the caller must navigate away.
func (uc *checkoutUseCaseImpl) Start(ctx context.Context, orderID uuid.UUID) (uuid.UUID, error) {
	details, err := uc.source.FetchOrderDetails(ctx, orderID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrSourceUnavailable)
	}

	session := checkout.NewSession(uc.services, uuid.New())
	if err := session.Activate(details.Order, details.Account); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	if err := uc.sessions.Create(session); err != nil {
		return uuid.Nil, err
	}
	return session.ID(), nil
}

func (uc *checkoutUseCaseImpl) ToggleRedemption(sessionID uuid.UUID, enabled bool) error {
	return uc.sessions.Within(sessionID, func(s *checkout.Session) error {
		return s.ToggleRedemption(enabled)
	})
}

func (uc *checkoutUseCaseImpl) SetRequestedPoints(sessionID uuid.UUID, raw string) error {
	return uc.sessions.Within(sessionID, func(s *checkout.Session) error {
		return s.SetRequestedPoints(raw)
	})
}

func (uc *checkoutUseCaseImpl) Apply(sessionID uuid.UUID) error {
	return uc.sessions.Within(sessionID, func(s *checkout.Session) error {
		return s.ApplyRedemption()
	})
}

func (uc *checkoutUseCaseImpl) Clear(sessionID uuid.UUID) error {
	return uc.sessions.Within(sessionID, func(s *checkout.Session) error {
		return s.ClearRedemption()
	})
}

// submission is everything captured under the session lock at submit time.
// The gateway round trips run outside the lock; the epoch decides afterwards
// whether their outcome may still land on the session.
type submission struct {
	epoch   uint64
	payload IntentPayload
}

// Submit drives Submitting → Confirming → Succeeded | Failed. The payable
// amount is locked before the first gateway call; redemption edits are
// rejected by the state machine until the session settles.
func (uc *checkoutUseCaseImpl) Submit(ctx context.Context, sessionID uuid.UUID, card CardInput) (*checkout.Result, error) {
	sub, err := uc.beginSubmission(sessionID)
	if err != nil {
		return nil, err
	}

	methodID, err := uc.gateway.CreatePaymentMethod(ctx, card)
	if err != nil {
		return nil, uc.failSubmission(sessionID, sub.epoch, reasonOf(err))
	}
	sub.payload.PaymentMethodID = methodID

	if err := uc.advance(sessionID, sub.epoch, func(s *checkout.Session) error {
		return s.MarkConfirming()
	}); err != nil {
		return nil, err
	}

	intent, err := uc.gateway.ValidateAndIntent(ctx, sub.payload)
	if err != nil {
		return nil, uc.failSubmission(sessionID, sub.epoch, reasonOf(err))
	}
	if !intent.Valid {
		reason := intent.Reason
		if reason == "" {
			reason = genericGatewayMessage
		}
		return nil, uc.failSubmission(sessionID, sub.epoch, reason)
	}

	var result *checkout.Result
	err = uc.advance(sessionID, sub.epoch, func(s *checkout.Session) error {
		if err := s.Complete(sub.payload.OrderID.String()); err != nil {
			return err
		}
		result = s.Result()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *checkoutUseCaseImpl) Abandon(sessionID uuid.UUID) error {
	err := uc.sessions.Within(sessionID, func(s *checkout.Session) error {
		return s.Abandon()
	})
	if err != nil {
		return err
	}
	uc.sessions.Delete(sessionID)
	return nil
}

func (uc *checkoutUseCaseImpl) beginSubmission(sessionID uuid.UUID) (*submission, error) {
	var sub submission
	err := uc.sessions.Within(sessionID, func(s *checkout.Session) error {
		amount, err := s.BeginSubmit()
		if err != nil {
			return err
		}
		account := s.Account()
		totals := s.Totals()
		sub = submission{
			epoch: s.Epoch(),
			payload: IntentPayload{
				OrderID:  s.Order().ID(),
				Amount:   amount,
				Currency: s.Order().Currency(),
				Loyalty: LoyaltyContext{
					PointsApplied: s.Intent().AppliedPoints,
					Discount:      totals.Discount,
					BalanceBefore: account.PointsBalance() + s.Intent().AppliedPoints,
					BalanceAfter:  account.PointsBalance(),
				},
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// advance applies fn only if the session still exists on the same epoch.
// A torn-down session swallows the late result: no state mutation after
// abandonment.
func (uc *checkoutUseCaseImpl) advance(sessionID uuid.UUID, epoch uint64, fn func(*checkout.Session) error) error {
	err := uc.sessions.Within(sessionID, func(s *checkout.Session) error {
		if s.Epoch() != epoch {
			return errs.ErrSessionTerminated
		}
		return fn(s)
	})
	if errors.Is(err, errs.ErrSessionNotFound) {
		return errs.ErrSessionTerminated
	}
	return err
}

// failSubmission records the failure reason and reports a gateway error to
// the caller. The session returns to a retryable Failed state.
func (uc *checkoutUseCaseImpl) failSubmission(sessionID uuid.UUID, epoch uint64, reason string) error {
	if err := uc.advance(sessionID, epoch, func(s *checkout.Session) error {
		return s.Fail(reason)
	}); err != nil {
		return err
	}
	return errs.Mark(errs.New(reason), errs.ErrGatewayError)
}

func reasonOf(err error) string {
	if err == nil {
		return genericGatewayMessage
	}
	return err.Error()
}
