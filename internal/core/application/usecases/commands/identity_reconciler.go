package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
	"storefront/internal/pkg/errs"
)

// ReconcileResult is the application identity a verified phone resolves to.
type ReconcileResult struct {
	ApplicationUserID   string
	IsNewUser           bool
	ResolvedDisplayName string
	Role                kernel.Role
}

// Reconciler maps a verified phone to a stable application user.
type Reconciler interface {
	Reconcile(ctx context.Context, phone kernel.Phone, authID string, displayName *string) (ReconcileResult, error)
}

// IdentityReconciler keys identity on the phone number rather than on the auth
// provider's id, so a user who verifies again from a new device gets back the
// account created on the first login.
type IdentityReconciler struct {
	uowFactory IdentityUoWFactory
	allocator  SequenceAllocator
	clock      Clock
}

func NewIdentityReconciler(uowFactory IdentityUoWFactory, allocator SequenceAllocator, clock Clock) IdentityReconciler {
	return IdentityReconciler{
		uowFactory: uowFactory,
		allocator:  allocator,
		clock:      clock,
	}
}

// Reconcile returns the existing user for phone, or creates one with id authID.
// Creation happens under the users counter lock and re-checks the phone after
// taking it, so two first logins racing on one phone create a single user.
// Store failures are returned as errs.ReconciliationError.
func (r IdentityReconciler) Reconcile(
	ctx context.Context,
	phone kernel.Phone,
	authID string,
	displayName *string,
) (ReconcileResult, error) {
	if err := errors.Join(phone.Validate(), validateAuthID(authID)); err != nil {
		return ReconcileResult{}, err
	}

	result, err := r.reconcile(ctx, phone, authID, displayName)
	if err != nil {
		return ReconcileResult{}, errs.NewReconciliationError(err)
	}
	return result, nil
}

func (r IdentityReconciler) reconcile(
	ctx context.Context,
	phone kernel.Phone,
	authID string,
	displayName *string,
) (ReconcileResult, error) {
	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ReconcileResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	users := uow.UserRepository()

	existing, err := users.FindByPhone(ctx, phone)
	if err == nil {
		return r.resolveExisting(ctx, uow, existing, displayName)
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return ReconcileResult{}, err
	}

	ordinal, err := r.allocator.NextUserOrdinal(ctx, uow.CounterRepository())
	if err != nil {
		return ReconcileResult{}, err
	}

	existing, err = users.FindByPhone(ctx, phone)
	if err == nil {
		return r.resolveExisting(ctx, uow, existing, displayName)
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return ReconcileResult{}, err
	}

	name := fmt.Sprintf("User %d", ordinal)
	if displayName != nil && strings.TrimSpace(*displayName) != "" {
		name = *displayName
	}

	created, err := user.NewUser(authID, phone, name, r.clock())
	if err != nil {
		return ReconcileResult{}, err
	}

	if err = users.Add(ctx, created); err != nil {
		return ReconcileResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ReconcileResult{}, err
	}

	return ReconcileResult{
		ApplicationUserID:   created.ID(),
		IsNewUser:           true,
		ResolvedDisplayName: created.DisplayName(),
		Role:                created.Role(),
	}, nil
}

func (r IdentityReconciler) resolveExisting(
	ctx context.Context,
	uow IdentityUoW,
	existing *user.User,
	displayName *string,
) (ReconcileResult, error) {
	if displayName != nil && existing.ClaimName(*displayName, r.clock()) {
		if err := uow.UserRepository().Update(ctx, existing); err != nil {
			return ReconcileResult{}, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return ReconcileResult{}, err
	}

	return ReconcileResult{
		ApplicationUserID:   existing.ID(),
		IsNewUser:           false,
		ResolvedDisplayName: existing.DisplayName(),
		Role:                existing.Role(),
	}, nil
}

func validateAuthID(authID string) error {
	if strings.TrimSpace(authID) == "" {
		return errs.NewValueIsRequiredError("auth id")
	}
	return nil
}
