package services

import (
	"context"
	"fmt"

	"sucree/internal/blob"
	"sucree/internal/domain"
	"sucree/internal/validate"
)

type SettingsService struct {
	Settings    SettingsStore
	Blobs       blob.Store
	DefaultName string
}

func NewSettingsService(settings SettingsStore, blobs blob.Store, defaultName string) *SettingsService {
	return &SettingsService{Settings: settings, Blobs: blobs, DefaultName: defaultName}
}

// Get returns the store settings, creating them with the default name on first call.
func (s *SettingsService) Get(ctx context.Context) (domain.StoreSettings, error) {
	out, err := s.Settings.GetOrCreate(ctx, s.DefaultName)
	if err != nil {
		return domain.StoreSettings{}, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return out, nil
}

// Save uploads embedded brand images and writes the provided fields.
func (s *SettingsService) Save(ctx context.Context, p domain.SettingsPatch) (domain.StoreSettings, error) {
	if p.Name != nil {
		name, ok := validate.Name(*p.Name)
		if !ok {
			return domain.StoreSettings{}, fmt.Errorf("%w: store name cannot be empty", domain.ErrValidation)
		}
		p.Name = &name
	}
	if p.HeroLink != nil {
		link, ok := validate.HeroLink(*p.HeroLink)
		if !ok {
			return domain.StoreSettings{}, fmt.Errorf("%w: hero link must be #anchor or an http(s) url", domain.ErrValidation)
		}
		p.HeroLink = &link
	}
	for _, field := range []**string{&p.LogoURL, &p.HeroImage} {
		if *field == nil || !blob.IsEmbedded(**field) {
			continue
		}
		url, err := s.Blobs.Save(ctx, **field, "brand")
		if err != nil {
			return domain.StoreSettings{}, uploadErr(err)
		}
		*field = &url
	}

	out, err := s.Settings.Upsert(ctx, s.DefaultName, p)
	if err != nil {
		return domain.StoreSettings{}, fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	return out, nil
}
