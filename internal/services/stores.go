package services

import (
	"context"

	"sucree/internal/domain"
)

// Repository contracts the services depend on. repos.*Repo satisfy them.

type ProductStore interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) (domain.Product, error)
	Update(ctx context.Context, p domain.Product) (domain.Product, error)
	Delete(ctx context.Context, id string) error
}

type CategoryStore interface {
	List(ctx context.Context) ([]domain.Category, error)
	Exists(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, c domain.Category) (domain.Category, error)
	Update(ctx context.Context, c domain.Category) (domain.Category, error)
	Delete(ctx context.Context, id string) error
}

type SettingsStore interface {
	GetOrCreate(ctx context.Context, defaultName string) (domain.StoreSettings, error)
	Upsert(ctx context.Context, defaultName string, p domain.SettingsPatch) (domain.StoreSettings, error)
}
