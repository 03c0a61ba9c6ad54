package commands_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReconciler(uow *MockUoW) commands.IdentityReconciler {
	return commands.NewIdentityReconciler(
		&uowFactory[commands.IdentityUoW]{uow: uow},
		commands.NewSequenceAllocator("", kernel.BusinessClock{}),
		fixedClock,
	)
}

// permissiveUoW accepts any number of transactions.
func permissiveUoW() *MockUoW {
	uow := new(MockUoW)
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Commit", mock.Anything).Return(nil)
	uow.On("Rollback", mock.Anything).Return(nil)
	return uow
}

func strPtr(s string) *string {
	return &s
}

func TestIdentityReconciler_Reconcile(t *testing.T) {
	phone := "+919876543210"

	t.Run("should resolve a second auth id to the user created by the first", func(t *testing.T) {
		ctx := t.Context()
		uow := permissiveUoW()
		uow.Users = &MemoryUserRepository{}
		uow.Counters = NewMemoryCounterRepository()
		reconciler := newReconciler(uow)

		first, err := reconciler.Reconcile(ctx, mustPhone(t, phone), "auth_A", nil)
		require.NoError(t, err)
		second, err := reconciler.Reconcile(ctx, mustPhone(t, phone), "auth_B", nil)
		require.NoError(t, err)

		assert.Equal(t, "auth_A", first.ApplicationUserID)
		assert.True(t, first.IsNewUser)
		assert.Equal(t, "auth_A", second.ApplicationUserID)
		assert.False(t, second.IsNewUser)
		assert.Equal(t, first.ResolvedDisplayName, second.ResolvedDisplayName)
	})

	t.Run("should generate sequential names when none is supplied", func(t *testing.T) {
		ctx := t.Context()
		uow := permissiveUoW()
		uow.Users = &MemoryUserRepository{}
		uow.Counters = NewMemoryCounterRepository()
		reconciler := newReconciler(uow)

		a, err := reconciler.Reconcile(ctx, mustPhone(t, "+919000000001"), "auth_1", nil)
		require.NoError(t, err)
		b, err := reconciler.Reconcile(ctx, mustPhone(t, "+919000000002"), "auth_2", strPtr("  "))
		require.NoError(t, err)

		assert.Equal(t, "User 1", a.ResolvedDisplayName)
		assert.Equal(t, "User 2", b.ResolvedDisplayName)
		assert.Equal(t, kernel.RoleCustomer, a.Role)
	})

	t.Run("should keep the supplied name of a new user", func(t *testing.T) {
		ctx := t.Context()
		uow := permissiveUoW()
		uow.Users = &MemoryUserRepository{}
		uow.Counters = NewMemoryCounterRepository()

		result, err := newReconciler(uow).Reconcile(ctx, mustPhone(t, phone), "auth_A", strPtr("Asha"))

		require.NoError(t, err)
		assert.Equal(t, "Asha", result.ResolvedDisplayName)
	})

	t.Run("should not overwrite the name of an existing user", func(t *testing.T) {
		ctx := t.Context()
		existing := newCustomer(t, "auth_A", phone, "Asha")

		users := new(MockUserRepository)
		users.On("FindByPhone", ctx, mustPhone(t, phone)).Return(existing, nil).Once()

		uow := committingUoW(ctx)
		uow.Users = users

		result, err := newReconciler(uow).Reconcile(ctx, mustPhone(t, phone), "auth_B", strPtr("Someone Else"))

		require.NoError(t, err)
		assert.Equal(t, "Asha", result.ResolvedDisplayName)
		users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("should re-check the phone after taking the counter lock", func(t *testing.T) {
		ctx := t.Context()
		winner := newCustomer(t, "auth_A", phone, "User 1")

		users := new(MockUserRepository)
		mock.InOrder(
			users.On("FindByPhone", ctx, mustPhone(t, phone)).
				Return(nil, errs.NewObjectNotFoundError("user", phone)).Once(),
			users.On("FindByPhone", ctx, mustPhone(t, phone)).Return(winner, nil).Once(),
		)

		uow := committingUoW(ctx)
		uow.Users = users
		uow.Counters = NewMemoryCounterRepository()

		result, err := newReconciler(uow).Reconcile(ctx, mustPhone(t, phone), "auth_B", nil)

		require.NoError(t, err)
		assert.Equal(t, "auth_A", result.ApplicationUserID)
		assert.False(t, result.IsNewUser)
		users.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	})

	t.Run("should wrap store failures in ReconciliationError", func(t *testing.T) {
		ctx := t.Context()
		users := new(MockUserRepository)
		users.On("FindByPhone", ctx, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		uow := abortingUoW(ctx)
		uow.Users = users

		_, err := newReconciler(uow).Reconcile(ctx, mustPhone(t, phone), "auth_A", nil)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrReconciliation)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should reject a missing auth id before touching storage", func(t *testing.T) {
		uow := new(MockUoW)

		_, err := newReconciler(uow).Reconcile(t.Context(), mustPhone(t, phone), " ", nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.NotErrorIs(t, err, errs.ErrReconciliation)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}

func TestExchangeCredentialCommandHandler_Handle(t *testing.T) {
	phone := "+919876543210"
	verified := func(ctx context.Context, verifier *MockIdentityVerifier, authID string) {
		verifier.On("Verify", ctx, "otp-token").
			Return(commandsVerified(authID, phone), nil).Once()
	}

	t.Run("should mint a session for the reconciled user", func(t *testing.T) {
		ctx := t.Context()
		verifier := new(MockIdentityVerifier)
		reconciler := new(MockReconciler)

		verified(ctx, verifier, "auth_B")
		reconciler.On("Reconcile", ctx, mustPhone(t, phone), "auth_B", (*string)(nil)).
			Return(commands.ReconcileResult{
				ApplicationUserID:   "auth_A",
				ResolvedDisplayName: "Asha",
				Role:                kernel.RoleCustomer,
			}, nil).Once()
		verifier.On("MintSession", ctx, "auth_A", portsClaims("customer", phone, commands.PhoneProvider)).
			Return("session-token", nil).Once()

		cmd, err := commands.NewExchangeCredentialCommand("otp-token", nil)
		require.NoError(t, err)

		handler := commands.NewExchangeCredentialCommandHandler(verifier, reconciler, true, discardLogger())
		result, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.ExchangeResult{
			SessionToken:        "session-token",
			ResolvedDisplayName: "Asha",
			UserID:              "auth_A",
			IsNewUser:           false,
		}, result)
		verifier.AssertExpectations(t)
		reconciler.AssertExpectations(t)
	})

	t.Run("should fall back to the provisional auth id when reconciliation fails", func(t *testing.T) {
		ctx := t.Context()
		verifier := new(MockIdentityVerifier)
		reconciler := new(MockReconciler)
		name := "Asha"

		verified(ctx, verifier, "auth_B")
		reconciler.On("Reconcile", ctx, mustPhone(t, phone), "auth_B", &name).
			Return(commands.ReconcileResult{}, errs.NewReconciliationError(errors.New("db down"))).Once()
		verifier.On("MintSession", ctx, "auth_B", portsClaims("customer", phone, commands.PhoneProvider)).
			Return("provisional-token", nil).Once()

		cmd, err := commands.NewExchangeCredentialCommand("otp-token", &name)
		require.NoError(t, err)

		result, err := commands.NewExchangeCredentialCommandHandler(verifier, reconciler, true, discardLogger()).
			Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "auth_B", result.UserID)
		assert.Equal(t, "Asha", result.ResolvedDisplayName)
		assert.Equal(t, "provisional-token", result.SessionToken)
		assert.False(t, result.IsNewUser)
	})

	t.Run("should fail when reconciliation fails and fallback is off", func(t *testing.T) {
		ctx := t.Context()
		verifier := new(MockIdentityVerifier)
		reconciler := new(MockReconciler)

		verified(ctx, verifier, "auth_B")
		reconciler.On("Reconcile", ctx, mock.Anything, "auth_B", mock.Anything).
			Return(commands.ReconcileResult{}, errs.NewReconciliationError(errors.New("db down"))).Once()

		cmd, err := commands.NewExchangeCredentialCommand("otp-token", nil)
		require.NoError(t, err)

		_, err = commands.NewExchangeCredentialCommandHandler(verifier, reconciler, false, discardLogger()).
			Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrReconciliation)
		verifier.AssertNotCalled(t, "MintSession", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should leave lost races to the caller instead of falling back", func(t *testing.T) {
		ctx := t.Context()
		verifier := new(MockIdentityVerifier)
		reconciler := new(MockReconciler)

		verified(ctx, verifier, "auth_B")
		conflict := errs.NewReconciliationError(errs.NewTransactionConflictError("counter"))
		reconciler.On("Reconcile", ctx, mock.Anything, "auth_B", mock.Anything).
			Return(commands.ReconcileResult{}, conflict).Once()

		cmd, err := commands.NewExchangeCredentialCommand("otp-token", nil)
		require.NoError(t, err)

		_, err = commands.NewExchangeCredentialCommandHandler(verifier, reconciler, true, discardLogger()).
			Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrTransactionConflict)
		assert.True(t, errs.IsTransient(err))
		verifier.AssertNotCalled(t, "MintSession", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should reject an unverifiable credential", func(t *testing.T) {
		ctx := t.Context()
		verifier := new(MockIdentityVerifier)
		reconciler := new(MockReconciler)
		verifier.On("Verify", ctx, "otp-token").
			Return(commandsVerified("", ""), errors.New("token expired")).Once()

		cmd, err := commands.NewExchangeCredentialCommand("otp-token", nil)
		require.NoError(t, err)

		_, err = commands.NewExchangeCredentialCommandHandler(verifier, reconciler, true, discardLogger()).
			Handle(ctx, cmd)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "token expired")
		reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should require a credential", func(t *testing.T) {
		_, err := commands.NewExchangeCredentialCommand("   ", nil)
		require.ErrorIs(t, err, commands.ErrCredentialIsRequired)
	})
}
