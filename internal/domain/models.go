package domain

// AllCategoryID is the synthetic "no filter" category. It is never persisted.
const AllCategoryID = "all"

// SettingsID keys the StoreSettings singleton.
const SettingsID = "default"

type Category struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Image string `db:"image" json:"image"`
}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	CategoryID  string   `json:"categoryId"`
	Images      []string `json:"images"`
	Ingredients []string `json:"ingredients"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

// HasSize reports whether size is one of the product's offered sizes.
func (p Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

type StoreSettings struct {
	ID             string `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	LogoURL        string `db:"logo_url" json:"logoUrl"`
	HeroImage      string `db:"hero_image" json:"heroImage"`
	HeroTitle      string `db:"hero_title" json:"heroTitle"`
	HeroSubtitle   string `db:"hero_subtitle" json:"heroSubtitle"`
	HeroButtonText string `db:"hero_button_text" json:"heroButtonText"`
	HeroLink       string `db:"hero_link" json:"heroLink"` // "#anchor" or absolute URL
}

// CartItem is a product snapshot taken when it was added to the cart.
type CartItem struct {
	Product
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selectedSize,omitempty"`
}

// SettingsPatch carries only the settings fields a caller provided; nil means keep.
type SettingsPatch struct {
	Name           *string `json:"name"`
	LogoURL        *string `json:"logoUrl"`
	HeroImage      *string `json:"heroImage"`
	HeroTitle      *string `json:"heroTitle"`
	HeroSubtitle   *string `json:"heroSubtitle"`
	HeroButtonText *string `json:"heroButtonText"`
	HeroLink       *string `json:"heroLink"`
}
