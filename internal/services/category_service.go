package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"sucree/internal/blob"
	"sucree/internal/domain"
	"sucree/internal/validate"
)

type CategoryForm struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type CategoryService struct {
	Cats  CategoryStore
	Blobs blob.Store
}

func NewCategoryService(cats CategoryStore, blobs blob.Store) *CategoryService {
	return &CategoryService{Cats: cats, Blobs: blobs}
}

// List returns persisted categories ordered by name, without the "all" sentinel.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	out, err := s.Cats.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return out, nil
}

// Save updates the category when f.ID names an existing one, otherwise creates it.
func (s *CategoryService) Save(ctx context.Context, f CategoryForm) (domain.Category, error) {
	name, ok := validate.Name(f.Name)
	if !ok {
		return domain.Category{}, fmt.Errorf("%w: category name is required", domain.ErrValidation)
	}
	image := f.Image
	if blob.IsEmbedded(image) {
		url, err := s.Blobs.Save(ctx, image, "categories")
		if err != nil {
			return domain.Category{}, uploadErr(err)
		}
		image = url
	}

	if f.ID != "" && f.ID != domain.AllCategoryID {
		exists, err := s.Cats.Exists(ctx, f.ID)
		if err != nil {
			return domain.Category{}, fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
		}
		if exists {
			out, err := s.Cats.Update(ctx, domain.Category{ID: f.ID, Name: name, Image: image})
			if err != nil {
				return domain.Category{}, fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
			}
			return out, nil
		}
	}

	id, err := s.newID(ctx, f.ID, name)
	if err != nil {
		return domain.Category{}, fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	out, err := s.Cats.Create(ctx, domain.Category{ID: id, Name: name, Image: image})
	if err != nil {
		return domain.Category{}, fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	return out, nil
}

// newID keeps a free, well formed requested id, else slugs the name, else
// falls back to a uuid.
func (s *CategoryService) newID(ctx context.Context, requested, name string) (string, error) {
	for _, cand := range []string{requested, validate.Slugify(name)} {
		id, ok := validate.ID(cand)
		if !ok || id == domain.AllCategoryID {
			continue
		}
		taken, err := s.Cats.Exists(ctx, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return uuid.NewString(), nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if id == "" || id == domain.AllCategoryID {
		return fmt.Errorf("%w: invalid category id %q", domain.ErrInvalidOperation, id)
	}
	err := s.Cats.Delete(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: category %q", domain.ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// uploadErr keeps caller mistakes as-is and folds I/O trouble into ErrSaveFailed.
func uploadErr(err error) error {
	if errors.Is(err, domain.ErrInvalidImageFormat) || errors.Is(err, domain.ErrValidation) {
		return err
	}
	return fmt.Errorf("%w: image upload: %v", domain.ErrSaveFailed, err)
}
