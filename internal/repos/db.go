package repos

import (
	"context"
	"log"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"sucree/internal/domain"
	"sucree/internal/validate"
)

// tsLayout sorts lexicographically, which ORDER BY created_at relies on.
const tsLayout = "2006-01-02 15:04:05.000000"

func now() string { return time.Now().UTC().Format(tsLayout) }

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: ":memory:" databases are per-connection and the
	// foreign_keys pragma is per-connection too.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed the demo menu if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Categories ('all' is synthetic and never stored)
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY CHECK (id <> 'all'),
  name TEXT NOT NULL CHECK (name <> ''),
  image TEXT NOT NULL DEFAULT '',
  created_at TEXT,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_categories_name ON categories(name);

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price NUMERIC NOT NULL CHECK (price >= 0),
  images_json TEXT NOT NULL DEFAULT '[]',
  ingredients_json TEXT NOT NULL DEFAULT '[]',
  sizes_json TEXT NOT NULL DEFAULT '[]',
  stock INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
  created_at TEXT NOT NULL,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_products_category   ON products(category_id);
CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at);

-- Store settings singleton
CREATE TABLE IF NOT EXISTS store_settings(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  logo_url TEXT NOT NULL DEFAULT '',
  hero_image TEXT NOT NULL DEFAULT '',
  hero_title TEXT NOT NULL DEFAULT '',
  hero_subtitle TEXT NOT NULL DEFAULT '',
  hero_button_text TEXT NOT NULL DEFAULT '',
  hero_link TEXT NOT NULL DEFAULT '',
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

var seedCategories = []domain.Category{
	{ID: "cakes", Name: "Bolos", Image: "https://picsum.photos/id/1080/200/200"},
	{ID: "tarts", Name: "Tortas", Image: "https://picsum.photos/id/292/200/200"},
	{ID: "croissants", Name: "Viennoiserie", Image: "https://picsum.photos/id/493/200/200"},
	{ID: "macarons", Name: "Macarons", Image: "https://picsum.photos/id/835/200/200"},
	{ID: "cookies", Name: "Cookies", Image: "https://picsum.photos/id/365/200/200"},
}

var seedProducts = []domain.Product{
	{
		ID: "red-velvet-royale", Name: "Red Velvet Royale", CategoryID: "cakes", Price: 180.00, Stock: 6,
		Description: "Bolo red velvet clássico com camadas de cream cheese frosting suave e notas de baunilha de Madagascar.",
		Ingredients: validate.SplitIngredients("Farinha de trigo, cacau, buttermilk, vinagre, cream cheese, baunilha."),
		Images:      []string{"https://picsum.photos/id/1080/800/800", "https://picsum.photos/id/488/800/800"},
		Sizes:       []string{"P", "M", "G"},
	},
	{
		ID: "tarte-au-citron", Name: "Tarte au Citron", CategoryID: "tarts", Price: 85.00, Stock: 8,
		Description: "Torta de limão siciliano com merengue italiano maçaricado. Acidez equilibrada com a doçura do merengue.",
		Ingredients: validate.SplitIngredients("Massa sablée, creme de limão siciliano, merengue italiano."),
		Images:      []string{"https://picsum.photos/id/292/800/800", "https://picsum.photos/id/493/800/800"},
	},
	{
		ID: "croissant-au-beurre", Name: "Croissant Au Beurre", CategoryID: "croissants", Price: 15.00, Stock: 30,
		Description: "Croissant tradicional francês, feito com manteiga AOP e fermentação longa de 48 horas.",
		Ingredients: validate.SplitIngredients("Farinha T45, manteiga extra, fermento natural, leite."),
		Images:      []string{"https://picsum.photos/id/493/800/800"},
	},
	{
		ID: "box-macarons-12", Name: "Box Macarons (12 un)", CategoryID: "macarons", Price: 120.00, Stock: 12,
		Description: "Seleção de macarons sortidos: Pistache, Framboesa, Chocolate Belga e Caramelo Salgado.",
		Ingredients: validate.SplitIngredients("Farinha de amêndoas, claras, açúcar, ganache de chocolate, frutas."),
		Images:      []string{"https://picsum.photos/id/835/800/800", "https://picsum.photos/id/431/800/800"},
	},
	{
		ID: "dark-chocolate-cookie", Name: "Dark Chocolate Cookie", CategoryID: "cookies", Price: 18.00, Stock: 0,
		Description: "Cookie de chocolate 70% com pedaços de avelã e flor de sal.",
		Images:      []string{"https://picsum.photos/id/365/800/800"},
	},
	{
		ID: "strawberry-cheesecake", Name: "Strawberry Cheesecake", CategoryID: "cakes", Price: 22.00, Stock: 4,
		Description: "Cheesecake estilo NY com calda de morangos frescos cozidos lentamente.",
		Images:      []string{"https://picsum.photos/id/429/800/800"},
	},
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/products")

	ctx := context.Background()
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	ts := now()
	for _, c := range seedCategories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories(id,name,image,created_at) VALUES(?,?,?,?)`,
			c.ID, c.Name, c.Image, ts); err != nil {
			return err
		}
	}
	// Stagger created_at so the storefront lists the menu in this order.
	base := time.Now().UTC()
	for i, p := range seedProducts {
		p.CreatedAt = base.Add(-time.Duration(i) * time.Second).Format(tsLayout)
		if err := insertProduct(ctx, tx, p); err != nil {
			return err
		}
	}
	return tx.Commit()
}
