package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"sucree/internal/blob"
	"sucree/internal/domain"
	applog "sucree/internal/log"
	"sucree/internal/validate"
)

// maxParallelUploads bounds the image fan-out of a single product save.
const maxParallelUploads = 4

// ProductForm is the loosely typed body the admin panel posts.
type ProductForm struct {
	ID          string          `json:"id"`
	IsNew       bool            `json:"isNew"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       json.RawMessage `json:"price"`
	CategoryID  string          `json:"categoryId"`
	Images      []string        `json:"images"`
	Ingredients json.RawMessage `json:"ingredients"`
	Stock       json.RawMessage `json:"stock"`
	Sizes       []string        `json:"sizes"`
}

// Creates reports whether the form asks for a new record.
func (f ProductForm) Creates() bool { return f.IsNew || f.ID == "" }

type ProductService struct {
	Prods ProductStore
	Blobs blob.Store
}

func NewProductService(prods ProductStore, blobs blob.Store) *ProductService {
	return &ProductService{Prods: prods, Blobs: blobs}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	out, err := s.Prods.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return out, nil
}

// Parse turns a form into a product without touching images or storage.
func (f ProductForm) Parse() (domain.Product, error) {
	name, ok := validate.Name(f.Name)
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	catID, ok := validate.ID(f.CategoryID)
	if !ok || catID == domain.AllCategoryID {
		return domain.Product{}, fmt.Errorf("%w: a real category is required", domain.ErrValidation)
	}
	price, err := validate.Price(f.Price)
	if err != nil {
		return domain.Product{}, err
	}
	stock, err := validate.Stock(f.Stock)
	if err != nil {
		return domain.Product{}, err
	}
	ingredients, err := validate.Ingredients(f.Ingredients)
	if err != nil {
		return domain.Product{}, err
	}
	sizes := f.Sizes
	if sizes == nil {
		sizes = []string{}
	}
	images := f.Images
	if images == nil {
		images = []string{}
	}
	return domain.Product{
		ID:          f.ID,
		Name:        name,
		Description: f.Description,
		Price:       price,
		CategoryID:  catID,
		Images:      images,
		Ingredients: ingredients,
		Stock:       stock,
		Sizes:       sizes,
	}, nil
}

// Save validates the form, uploads embedded images and creates or updates the product.
func (s *ProductService) Save(ctx context.Context, f ProductForm) (domain.Product, error) {
	p, err := f.Parse()
	if err != nil {
		return domain.Product{}, err
	}
	p.Images = s.ingestImages(ctx, p.Images, "products")

	if f.Creates() {
		out, err := s.Prods.Create(ctx, p)
		if err != nil {
			return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
		}
		return out, nil
	}
	out, err := s.Prods.Update(ctx, p)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("%w: product %q", domain.ErrNotFound, p.ID)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	return out, nil
}

// ingestImages replaces embedded payloads with stored URLs, keeping order.
// A failed upload keeps the original element.
func (s *ProductService) ingestImages(ctx context.Context, images []string, folder string) []string {
	out := make([]string, len(images))
	copy(out, images)

	var g errgroup.Group
	g.SetLimit(maxParallelUploads)
	for i, img := range images {
		if !blob.IsEmbedded(img) {
			continue
		}
		i, img := i, img
		g.Go(func() error {
			url, err := s.Blobs.Save(ctx, img, folder)
			if err != nil {
				applog.Warn(nil, "upload.image.fail", err, map[string]any{"folder": folder, "index": i})
				return nil
			}
			out[i] = url
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%w: product id required", domain.ErrInvalidOperation)
	}
	err := s.Prods.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: product %q", domain.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}
