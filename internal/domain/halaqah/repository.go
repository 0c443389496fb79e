package halaqah

import "context"

type HalaqahRepository interface {
	Create(ctx context.Context, h Halaqah) (Halaqah, error)
	GetByID(ctx context.Context, id string) (Halaqah, error)
	List(ctx context.Context, activeOnly bool) ([]Halaqah, error)
	Update(ctx context.Context, req UpdateHalaqahRequest) error
	Delete(ctx context.Context, id string) error

	// CountWeeklySessionsByMusyrif sums sessions_per_week across the
	// musyrif's active halaqah.
	CountWeeklySessionsByMusyrif(ctx context.Context, musyrifID string) (int, error)
}
