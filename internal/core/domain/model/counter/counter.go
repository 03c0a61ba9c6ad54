package counter

import (
	"errors"
	"fmt"
	"strings"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"
)

// Name identifies a family of counters.
type Name string

const (
	// Orders counters are keyed by business day (YYYYMMDD).
	Orders Name = "orders"
	// Users has a single counter under UsersKey.
	Users Name = "users"
)

// UsersKey is the key of the only users counter.
const UsersKey = "all"

var ErrCounterIsNotConstructed = errors.New("Counter must be created via NewCounter constructor")

// Counter is a monotonic integer cursor. Counters are created lazily on their
// first increment and never deleted.
type Counter struct {
	name  Name
	key   string
	value int64
	guard guard.ConstructorGuard
}

// NewCounter creates a counter that has not issued any value yet.
func NewCounter(name Name, key string) (*Counter, error) {
	return RestoreCounter(name, key, 0)
}

func RestoreCounter(name Name, key string, value int64) (*Counter, error) {
	c := &Counter{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setName(name),
		c.setKey(key),
		c.setValue(value),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Counter) Validate() error {
	if c == nil {
		return ErrCounterIsNotConstructed
	}
	return c.guard.Validate(ErrCounterIsNotConstructed)
}

func (c *Counter) Name() Name {
	return c.name
}

func (c *Counter) Key() string {
	return c.key
}

func (c *Counter) Value() int64 {
	return c.value
}

// Next advances the cursor and returns the new value.
func (c *Counter) Next() int64 {
	c.value++
	return c.value
}

func (c *Counter) setName(name Name) error {
	if name != Orders && name != Users {
		return errs.NewValueIsInvalidErrorWithCause("counter name", fmt.Errorf("%q is not a known counter", string(name)))
	}
	c.name = name
	return nil
}

func (c *Counter) setKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errs.NewValueIsRequiredError("counter key")
	}
	c.key = key
	return nil
}

func (c *Counter) setValue(value int64) error {
	if value < 0 {
		return errs.NewValueIsOutOfRangeError("counter value", value, 0, "unbounded")
	}
	c.value = value
	return nil
}
