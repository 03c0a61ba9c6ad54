package commands

import (
	"context"
	"slices"
	"strings"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/rider"
	"storefront/internal/core/ports"
)

// lockRiders row-locks the riders ids in ascending id order, the same order
// GetAllForUpdate uses, so two units of work never wait on each other in a cycle.
func lockRiders(ctx context.Context, repo ports.RiderRepository, ids ...kernel.UUID) (map[kernel.UUID]*rider.Rider, error) {
	sorted := slices.Clone(ids)
	slices.SortFunc(sorted, func(a, b kernel.UUID) int {
		return strings.Compare(a.String(), b.String())
	})

	locked := make(map[kernel.UUID]*rider.Rider, len(sorted))
	for _, id := range sorted {
		if _, ok := locked[id]; ok {
			continue
		}
		r, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = r
	}

	return locked, nil
}
