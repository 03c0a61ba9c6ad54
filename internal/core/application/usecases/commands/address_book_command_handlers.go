package commands

import (
	"context"

	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"
)

// AddressBookCommandHandler edits a user's address book. Every edit loads the
// whole book, lets address.Book repair the default flag and writes back what
// changed together with the user's default address reference.
type AddressBookCommandHandler struct {
	uowFactory AddressBookUoWFactory
	clock      Clock
}

func NewAddressBookCommandHandler(uowFactory AddressBookUoWFactory, clock Clock) AddressBookCommandHandler {
	return AddressBookCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h AddressBookCommandHandler) HandleAdd(ctx context.Context, cmd AddAddressCommand) (*address.Address, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var added *address.Address
	err := h.edit(ctx, cmd.Actor(), cmd.UserID(), func(book *address.Book) error {
		a, err := address.NewAddress(
			kernel.NewUUID(),
			cmd.UserID(),
			cmd.Label(),
			cmd.FullAddress(),
			cmd.Coordinates(),
			cmd.Instructions(),
			h.clock(),
		)
		if err != nil {
			return err
		}
		if err = book.Add(a, cmd.MakeDefault()); err != nil {
			return err
		}
		added = a
		return nil
	}, func(uow AddressBookUoW) error {
		return uow.AddressRepository().Add(ctx, added)
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

func (h AddressBookCommandHandler) HandleSetDefault(ctx context.Context, cmd SetDefaultAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.edit(ctx, cmd.Actor(), cmd.UserID(), func(book *address.Book) error {
		return book.SetDefault(cmd.AddressID())
	}, nil)
}

func (h AddressBookCommandHandler) HandleRemove(ctx context.Context, cmd RemoveAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var removed *address.Address
	return h.edit(ctx, cmd.Actor(), cmd.UserID(), func(book *address.Book) error {
		var err error
		removed, err = book.Remove(cmd.AddressID())
		return err
	}, func(uow AddressBookUoW) error {
		return uow.AddressRepository().Remove(ctx, removed.ID())
	})
}

func (h AddressBookCommandHandler) edit(
	ctx context.Context,
	actor kernel.Actor,
	userID string,
	change func(book *address.Book) error,
	persist func(uow AddressBookUoW) error,
) error {
	if actor.ID != userID && actor.Role != kernel.RoleAdmin {
		return errs.NewForbiddenError("edit other users' addresses", actor.Role.String())
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	owner, err := uow.UserRepository().Get(ctx, userID)
	if err != nil {
		return err
	}

	stored, err := uow.AddressRepository().GetAllByUser(ctx, userID)
	if err != nil {
		return err
	}

	book, err := address.NewBook(userID, stored)
	if err != nil {
		return err
	}

	if err = change(book); err != nil {
		return err
	}

	if persist != nil {
		if err = persist(uow); err != nil {
			return err
		}
	}

	if err = h.saveChanged(ctx, uow, book, stored); err != nil {
		return err
	}

	if err = h.syncDefault(ctx, uow, owner, book); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// saveChanged updates stored addresses whose default flag moved. Newly added
// addresses were already inserted by the caller.
func (h AddressBookCommandHandler) saveChanged(
	ctx context.Context,
	uow AddressBookUoW,
	book *address.Book,
	stored []*address.Address,
) error {
	known := make(map[kernel.UUID]struct{}, len(stored))
	for _, a := range stored {
		known[a.ID()] = struct{}{}
	}

	for _, a := range book.Changed() {
		if _, ok := known[a.ID()]; !ok {
			continue
		}
		if err := uow.AddressRepository().Update(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (h AddressBookCommandHandler) syncDefault(ctx context.Context, uow AddressBookUoW, owner *user.User, book *address.Book) error {
	var want *kernel.UUID
	if d := book.Default(); d != nil {
		id := d.ID()
		want = &id
	}

	have := owner.DefaultAddressID()
	if (want == nil && have == nil) || (want != nil && have != nil && want.IsEqual(*have)) {
		return nil
	}

	owner.SetDefaultAddress(want, h.clock())
	return uow.UserRepository().Update(ctx, owner)
}
