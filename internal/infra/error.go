package infra

import (
	"errors"
	"log/slog"

	"checkout-ledger/internal/pkg/errs"
)

type CollaboratorErrorKind string

type CollaboratorError struct {
	Kind CollaboratorErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e CollaboratorError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e CollaboratorError) Unwrap() error {
	return e.err
}

func WrapCollabErr(slogger *slog.Logger, kind CollaboratorErrorKind, msg string, err error) error {
	logArgs := []any{
		slog.String("kind", string(kind)),
	}
	if err != nil {
		logArgs = append(logArgs, slog.String("error", err.Error()))
	}

	slogger.Error("Collaborator error: "+msg, logArgs...)

	if err != nil {
		err = errs.Wrap(err, msg)
	}

	return CollaboratorError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind CollaboratorErrorKind) bool {
	var e CollaboratorError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// Infrastructure-specific error kinds
const (
	KindSourceFailure  CollaboratorErrorKind = "ORDER_SOURCE_FAILURE"
	KindGatewayFailure CollaboratorErrorKind = "GATEWAY_FAILURE"
	KindBadPayload     CollaboratorErrorKind = "BAD_PAYLOAD"
)
