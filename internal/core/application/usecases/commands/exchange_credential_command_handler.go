package commands

import (
	"context"
	"fmt"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/ports"
	"storefront/internal/pkg/errs"
)

// PhoneProvider is the provider claim of sessions minted from phone credentials.
const PhoneProvider = "phone"

// ExchangeResult is returned to the client after a successful exchange.
type ExchangeResult struct {
	SessionToken        string
	ResolvedDisplayName string
	UserID              string
	IsNewUser           bool
}

// ExchangeCredentialCommandHandler verifies a phone credential, reconciles it
// to an application user and mints a session for that user.
//
// When reconciliation fails with a non-transient error and fallbackOnError is
// set, the session is bound to the provisional auth id instead: login stays
// available at the cost of a possible duplicate account. The fallback is
// logged as a warning.
type ExchangeCredentialCommandHandler struct {
	verifier        ports.IdentityVerifier
	reconciler      Reconciler
	fallbackOnError bool
	logger          *slog.Logger
}

func NewExchangeCredentialCommandHandler(
	verifier ports.IdentityVerifier,
	reconciler Reconciler,
	fallbackOnError bool,
	logger *slog.Logger,
) ExchangeCredentialCommandHandler {
	return ExchangeCredentialCommandHandler{
		verifier:        verifier,
		reconciler:      reconciler,
		fallbackOnError: fallbackOnError,
		logger:          logger.With("component", "ExchangeCredential"),
	}
}

func (h ExchangeCredentialCommandHandler) Handle(ctx context.Context, cmd ExchangeCredentialCommand) (ExchangeResult, error) {
	if err := cmd.Validate(); err != nil {
		return ExchangeResult{}, err
	}

	verified, err := h.verifier.Verify(ctx, cmd.Credential())
	if err != nil {
		return ExchangeResult{}, fmt.Errorf("verify credential: %w", err)
	}

	phone, err := kernel.NewPhone(verified.VerifiedPhone)
	if err != nil {
		return ExchangeResult{}, err
	}

	result, err := h.reconciler.Reconcile(ctx, phone, verified.ProvisionalAuthID, cmd.DisplayName())
	if err != nil {
		// Lost races are retried by the caller.
		if !h.fallbackOnError || errs.IsTransient(err) {
			return ExchangeResult{}, err
		}

		h.logger.WarnContext(ctx, "identity reconciliation failed, using provisional auth id",
			"authId", verified.ProvisionalAuthID,
			"error", err,
		)
		result = ReconcileResult{
			ApplicationUserID: verified.ProvisionalAuthID,
			Role:              kernel.RoleCustomer,
		}
		if name := cmd.DisplayName(); name != nil {
			result.ResolvedDisplayName = *name
		}
	}

	token, err := h.verifier.MintSession(ctx, result.ApplicationUserID, ports.SessionClaims{
		Role:     result.Role.String(),
		Phone:    phone.String(),
		Provider: PhoneProvider,
	})
	if err != nil {
		return ExchangeResult{}, fmt.Errorf("mint session: %w", err)
	}

	return ExchangeResult{
		SessionToken:        token,
		ResolvedDisplayName: result.ResolvedDisplayName,
		UserID:              result.ApplicationUserID,
		IsNewUser:           result.IsNewUser,
	}, nil
}
