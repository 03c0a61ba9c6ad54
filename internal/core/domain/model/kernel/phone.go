package kernel

import (
	"regexp"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

var (
	ErrPhoneIsRequired       = errs.NewValueIsRequiredError("phone")
	ErrPhoneIsNotConstructed = errs.NewValueIsRequiredError("phone must be created via NewPhone")

	e164Pattern = regexp.MustCompile(`^\+[1-9][0-9]{7,14}$`)
	phoneNoise  = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// Phone is a verified E.164 phone number, the business key of a User.
// Formatting characters (spaces, dashes, dots, parentheses) are stripped before
// validation so "+91 99999-99999" and "+919999999999" are the same Phone.
type Phone struct {
	value string
	guard guard.ConstructorGuard
}

func NewPhone(raw string) (Phone, error) {
	normalized := phoneNoise.Replace(strings.TrimSpace(raw))
	if normalized == "" {
		return Phone{}, ErrPhoneIsRequired
	}
	if !e164Pattern.MatchString(normalized) {
		return Phone{}, errs.NewValueIsInvalidError("phone")
	}
	return Phone{value: normalized, guard: guard.NewConstructorGuard()}, nil
}

func (p Phone) Validate() error {
	return p.guard.Validate(ErrPhoneIsNotConstructed)
}

func (p Phone) String() string {
	return p.value
}

func (p Phone) IsEqual(other Phone) bool {
	return p.value == other.value
}
