package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"sucree/internal/domain"
	applog "sucree/internal/log"
)

// AllCategory is injected in front of the persisted categories.
var AllCategory = domain.Category{ID: domain.AllCategoryID, Name: "Todos"}

// FilterProducts keeps, in order, the products in selected (unless it is
// "all" or empty) whose name or description contains query, ignoring case.
func FilterProducts(products []domain.Product, selected, query string) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	needle := strings.ToLower(query)
	search := strings.TrimSpace(query) != ""
	for _, p := range products {
		if selected != "" && selected != domain.AllCategoryID && p.CategoryID != selected {
			continue
		}
		if search && !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// WithAllCategory prepends the "all" sentinel unless cats already has it.
func WithAllCategory(cats []domain.Category) []domain.Category {
	for _, c := range cats {
		if c.ID == domain.AllCategoryID {
			return cats
		}
	}
	return append([]domain.Category{AllCategory}, cats...)
}

// Catalog is one read of everything the storefront shows.
type Catalog struct {
	Products   []domain.Product     `json:"products"`
	Categories []domain.Category    `json:"categories"`
	Settings   domain.StoreSettings `json:"settings"`
}

// View is the catalog narrowed by the visitor's category and search.
type View struct {
	Catalog
	SelectedCategory string           `json:"selectedCategory"`
	Query            string           `json:"query"`
	Visible          []domain.Product `json:"visible"`
}

func (c Catalog) View(selected, query string) View {
	if selected == "" {
		selected = domain.AllCategoryID
	}
	return View{Catalog: c, SelectedCategory: selected, Query: query, Visible: FilterProducts(c.Products, selected, query)}
}

type CatalogService struct {
	Prods    ProductStore
	Cats     CategoryStore
	Settings *SettingsService
}

func NewCatalogService(prods ProductStore, cats CategoryStore, settings *SettingsService) *CatalogService {
	return &CatalogService{Prods: prods, Cats: cats, Settings: settings}
}

// Snapshot never fails: a broken read is logged and shows up as an empty list.
func (s *CatalogService) Snapshot(ctx context.Context) Catalog {
	out := Catalog{Products: []domain.Product{}}
	if prods, err := s.Prods.List(ctx); err != nil {
		applog.Error(nil, "catalog.products.fail", err, nil)
	} else {
		out.Products = prods
	}
	cats, err := s.Cats.List(ctx)
	if err != nil {
		applog.Error(nil, "catalog.categories.fail", err, nil)
		cats = nil
	}
	out.Categories = WithAllCategory(cats)
	if st, err := s.Settings.Get(ctx); err != nil {
		applog.Error(nil, "catalog.settings.fail", err, nil)
		out.Settings = domain.StoreSettings{ID: domain.SettingsID, Name: s.Settings.DefaultName}
	} else {
		out.Settings = st
	}
	return out
}

// Product looks one product up for the cart.
func (s *CatalogService) Product(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.Prods.Get(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("%w: product %q", domain.ErrNotFound, id)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return p, nil
}
