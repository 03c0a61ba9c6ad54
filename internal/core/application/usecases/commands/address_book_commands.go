package commands

import (
	"errors"

	"storefront/internal/core/domain/model/address"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/guard"
)

var (
	ErrAddAddressCommandIsNotConstructed = errors.New(
		"AddAddressCommand must be created via NewAddAddressCommand constructor",
	)
	ErrSetDefaultAddressCommandIsNotConstructed = errors.New(
		"SetDefaultAddressCommand must be created via NewSetDefaultAddressCommand constructor",
	)
	ErrRemoveAddressCommandIsNotConstructed = errors.New(
		"RemoveAddressCommand must be created via NewRemoveAddressCommand constructor",
	)
)

// AddAddressCommand adds an entry to a user's address book.
type AddAddressCommand struct {
	actor        kernel.Actor
	userID       string
	label        address.Label
	fullAddress  string
	coordinates  *kernel.Coordinates
	instructions string
	makeDefault  bool
	guard        guard.ConstructorGuard
}

func NewAddAddressCommand(
	actor kernel.Actor,
	userID string,
	label string,
	fullAddress string,
	coordinates *kernel.Coordinates,
	instructions string,
	makeDefault bool,
) (AddAddressCommand, error) {
	l, labelErr := address.ParseLabel(label)

	var addressErr error
	if fullAddress == "" {
		addressErr = address.ErrFullAddressIsRequired
	}

	if err := errors.Join(actor.Role.Validate(), labelErr, addressErr); err != nil {
		return AddAddressCommand{}, err
	}

	return AddAddressCommand{
		actor:        actor,
		userID:       userID,
		label:        l,
		fullAddress:  fullAddress,
		coordinates:  coordinates,
		instructions: instructions,
		makeDefault:  makeDefault,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AddAddressCommand) Validate() error {
	return c.guard.Validate(ErrAddAddressCommandIsNotConstructed)
}

func (c AddAddressCommand) Actor() kernel.Actor {
	return c.actor
}

func (c AddAddressCommand) UserID() string {
	return c.userID
}

func (c AddAddressCommand) Label() address.Label {
	return c.label
}

func (c AddAddressCommand) FullAddress() string {
	return c.fullAddress
}

func (c AddAddressCommand) Coordinates() *kernel.Coordinates {
	return c.coordinates
}

func (c AddAddressCommand) Instructions() string {
	return c.instructions
}

func (c AddAddressCommand) MakeDefault() bool {
	return c.makeDefault
}

type SetDefaultAddressCommand struct {
	actor     kernel.Actor
	userID    string
	addressID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewSetDefaultAddressCommand(actor kernel.Actor, userID string, addressID kernel.UUID) (SetDefaultAddressCommand, error) {
	if err := errors.Join(actor.Role.Validate(), addressID.Validate()); err != nil {
		return SetDefaultAddressCommand{}, err
	}
	return SetDefaultAddressCommand{
		actor:     actor,
		userID:    userID,
		addressID: addressID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetDefaultAddressCommand) Validate() error {
	return c.guard.Validate(ErrSetDefaultAddressCommandIsNotConstructed)
}

func (c SetDefaultAddressCommand) Actor() kernel.Actor {
	return c.actor
}

func (c SetDefaultAddressCommand) UserID() string {
	return c.userID
}

func (c SetDefaultAddressCommand) AddressID() kernel.UUID {
	return c.addressID
}

type RemoveAddressCommand struct {
	actor     kernel.Actor
	userID    string
	addressID kernel.UUID
	guard     guard.ConstructorGuard
}

func NewRemoveAddressCommand(actor kernel.Actor, userID string, addressID kernel.UUID) (RemoveAddressCommand, error) {
	if err := errors.Join(actor.Role.Validate(), addressID.Validate()); err != nil {
		return RemoveAddressCommand{}, err
	}
	return RemoveAddressCommand{
		actor:     actor,
		userID:    userID,
		addressID: addressID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveAddressCommand) Validate() error {
	return c.guard.Validate(ErrRemoveAddressCommandIsNotConstructed)
}

func (c RemoveAddressCommand) Actor() kernel.Actor {
	return c.actor
}

func (c RemoveAddressCommand) UserID() string {
	return c.userID
}

func (c RemoveAddressCommand) AddressID() kernel.UUID {
	return c.addressID
}
