package halaqah

import "context"

type HalaqahService interface {
	CreateHalaqah(ctx context.Context, req CreateHalaqahRequest) (HalaqahResponse, error)
	GetHalaqah(ctx context.Context, id string) (HalaqahResponse, error)
	ListHalaqah(ctx context.Context, activeOnly bool) ([]HalaqahResponse, error)
	UpdateHalaqah(ctx context.Context, req UpdateHalaqahRequest) (HalaqahResponse, error)
	DeleteHalaqah(ctx context.Context, id string) error
}
