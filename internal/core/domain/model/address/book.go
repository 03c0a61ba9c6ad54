package address

import (
	"slices"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"
)

// Book is one user's address book. It keeps exactly one default address while
// the book is not empty.
type Book struct {
	userID    string
	addresses []*Address
	dirty     map[kernel.UUID]struct{}
}

// NewBook wraps the stored addresses of a user. Stored data without a single
// default is repaired: the oldest default (or the oldest address) wins.
func NewBook(userID string, addresses []*Address) (*Book, error) {
	b := &Book{
		userID:    userID,
		addresses: slices.Clone(addresses),
		dirty:     make(map[kernel.UUID]struct{}),
	}

	for _, a := range b.addresses {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if a.userID != userID {
			return nil, errs.NewValueIsInvalidError("address owner")
		}
	}

	slices.SortStableFunc(b.addresses, func(x, y *Address) int {
		return x.createdAt.Compare(y.createdAt)
	})

	var keep *Address
	for _, a := range b.addresses {
		if a.isDefault && keep == nil {
			keep = a
		}
	}
	if keep == nil && len(b.addresses) > 0 {
		keep = b.addresses[0]
	}
	if keep != nil {
		b.markDefault(keep)
	}

	return b, nil
}

func (b *Book) UserID() string {
	return b.userID
}

func (b *Book) Addresses() []*Address {
	return slices.Clone(b.addresses)
}

// Default returns the default address, nil for an empty book.
func (b *Book) Default() *Address {
	for _, a := range b.addresses {
		if a.isDefault {
			return a
		}
	}
	return nil
}

func (b *Book) Find(id kernel.UUID) (*Address, error) {
	for _, a := range b.addresses {
		if a.id.IsEqual(id) {
			return a, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("address", id.String())
}

// Add appends an address. The first address of a book, or one added with
// makeDefault, becomes the default.
func (b *Book) Add(a *Address, makeDefault bool) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.userID != b.userID {
		return errs.NewValueIsInvalidError("address owner")
	}

	a.isDefault = false
	b.addresses = append(b.addresses, a)
	b.dirty[a.id] = struct{}{}

	if makeDefault || len(b.addresses) == 1 {
		b.markDefault(a)
	}
	return nil
}

func (b *Book) SetDefault(id kernel.UUID) error {
	a, err := b.Find(id)
	if err != nil {
		return err
	}
	b.markDefault(a)
	return nil
}

// Remove deletes an address. Removing the default promotes the oldest
// remaining address.
func (b *Book) Remove(id kernel.UUID) (*Address, error) {
	a, err := b.Find(id)
	if err != nil {
		return nil, err
	}

	b.addresses = slices.DeleteFunc(b.addresses, func(x *Address) bool { return x == a })
	delete(b.dirty, a.id)

	if a.isDefault && len(b.addresses) > 0 {
		b.markDefault(b.addresses[0])
	}
	return a, nil
}

// Changed returns the addresses whose default flag or existence changed since
// the book was loaded.
func (b *Book) Changed() []*Address {
	out := make([]*Address, 0, len(b.dirty))
	for _, a := range b.addresses {
		if _, ok := b.dirty[a.id]; ok {
			out = append(out, a)
		}
	}
	return out
}

func (b *Book) markDefault(target *Address) {
	for _, a := range b.addresses {
		want := a == target
		if a.isDefault != want {
			a.isDefault = want
			b.dirty[a.id] = struct{}{}
		}
	}
}
