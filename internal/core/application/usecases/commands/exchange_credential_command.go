package commands

import (
	"errors"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrExchangeCredentialCommandIsNotConstructed = errors.New(
		"ExchangeCredentialCommand must be created via NewExchangeCredentialCommand constructor",
	)
	ErrCredentialIsRequired = errs.NewValueIsRequiredError("credential")
)

// ExchangeCredentialCommand trades a verified phone credential for an
// application session.
type ExchangeCredentialCommand struct {
	credential  string
	displayName *string
	guard       guard.ConstructorGuard
}

// NewExchangeCredentialCommand requires a credential; displayName may be nil.
func NewExchangeCredentialCommand(credential string, displayName *string) (ExchangeCredentialCommand, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return ExchangeCredentialCommand{}, ErrCredentialIsRequired
	}

	cmd := ExchangeCredentialCommand{
		credential: credential,
		guard:      guard.NewConstructorGuard(),
	}
	if displayName != nil {
		name := strings.TrimSpace(*displayName)
		cmd.displayName = &name
	}
	return cmd, nil
}

func (c ExchangeCredentialCommand) Validate() error {
	return c.guard.Validate(ErrExchangeCredentialCommandIsNotConstructed)
}

func (c ExchangeCredentialCommand) Credential() string {
	return c.credential
}

func (c ExchangeCredentialCommand) DisplayName() *string {
	if c.displayName == nil {
		return nil
	}
	name := *c.displayName
	return &name
}
