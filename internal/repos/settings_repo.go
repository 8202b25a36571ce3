package repos

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"sucree/internal/domain"
)

type SettingsRepo struct{ db *sqlx.DB }

func NewSettingsRepo(db *sqlx.DB) *SettingsRepo { return &SettingsRepo{db: db} }

const settingsCols = `id, name, logo_url, hero_image, hero_title, hero_subtitle, hero_button_text, hero_link`

func ensureSettings(ctx context.Context, ex sqlx.ExecerContext, defaultName string) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO store_settings(id, name) VALUES(?, ?)
		ON CONFLICT(id) DO NOTHING`, domain.SettingsID, defaultName)
	return err
}

// GetOrCreate returns the singleton, creating it with defaultName on first use.
func (r *SettingsRepo) GetOrCreate(ctx context.Context, defaultName string) (domain.StoreSettings, error) {
	if err := ensureSettings(ctx, r.db, defaultName); err != nil {
		return domain.StoreSettings{}, err
	}
	var s domain.StoreSettings
	err := r.db.GetContext(ctx, &s, `SELECT `+settingsCols+` FROM store_settings WHERE id = ?`, domain.SettingsID)
	return s, err
}

// Upsert creates the singleton if absent and overwrites the fields set in p,
// all in one transaction.
func (r *SettingsRepo) Upsert(ctx context.Context, defaultName string, p domain.SettingsPatch) (domain.StoreSettings, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.StoreSettings{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := ensureSettings(ctx, tx, defaultName); err != nil {
		return domain.StoreSettings{}, err
	}

	var sets []string
	var args []any
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	add("name", p.Name)
	add("logo_url", p.LogoURL)
	add("hero_image", p.HeroImage)
	add("hero_title", p.HeroTitle)
	add("hero_subtitle", p.HeroSubtitle)
	add("hero_button_text", p.HeroButtonText)
	add("hero_link", p.HeroLink)
	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, now(), domain.SettingsID)
		if _, err := tx.ExecContext(ctx,
			`UPDATE store_settings SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
			return domain.StoreSettings{}, err
		}
	}

	var s domain.StoreSettings
	if err := tx.GetContext(ctx, &s, `SELECT `+settingsCols+` FROM store_settings WHERE id = ?`, domain.SettingsID); err != nil {
		return domain.StoreSettings{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.StoreSettings{}, err
	}
	return s, nil
}
