package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline data if DB is empty (categories, demo profiles, listings)
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Profiles
CREATE TABLE IF NOT EXISTS profiles(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  points INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0),
  avatar_url TEXT NOT NULL DEFAULT '',
  role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user','admin')),
  location TEXT NOT NULL DEFAULT '',
  bio TEXT NOT NULL DEFAULT '',
  total_swaps INTEGER NOT NULL DEFAULT 0,
  rating REAL NOT NULL DEFAULT 5.0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_profiles_email ON profiles(LOWER(email));

-- Categories
CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  icon TEXT NOT NULL DEFAULT '',
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

-- Items
CREATE TABLE IF NOT EXISTS items(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category_id TEXT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
  size TEXT NOT NULL,
  condition TEXT NOT NULL CHECK (condition IN ('Like New','Excellent','Good','Fair')),
  points INTEGER NOT NULL CHECK (points > 0),
  tags_json TEXT NOT NULL DEFAULT '[]',
  images_json TEXT NOT NULL DEFAULT '[]',
  user_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','active','swapped','rejected')),
  views INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_items_category   ON items(category_id);
CREATE INDEX IF NOT EXISTS idx_items_user       ON items(user_id);
CREATE INDEX IF NOT EXISTS idx_items_status     ON items(status);
CREATE INDEX IF NOT EXISTS idx_items_created_at ON items(created_at);

-- Swap requests
CREATE TABLE IF NOT EXISTS swap_requests(
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL REFERENCES items(id) ON DELETE CASCADE,
  requester_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
  owner_id TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
  message TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','accepted','rejected')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_swaps_item      ON swap_requests(item_id);
CREATE INDEX IF NOT EXISTS idx_swaps_requester ON swap_requests(requester_id);
CREATE INDEX IF NOT EXISTS idx_swaps_owner     ON swap_requests(owner_id);

-- Transactions
CREATE TABLE IF NOT EXISTS transactions(
  id TEXT PRIMARY KEY,
  item_id TEXT NOT NULL REFERENCES items(id),
  buyer_id TEXT NOT NULL REFERENCES profiles(id),
  seller_id TEXT NOT NULL REFERENCES profiles(id),
  points INTEGER NOT NULL CHECK (points >= 0),
  type TEXT NOT NULL CHECK (type IN ('swap','purchase')),
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','completed','cancelled')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_tx_buyer  ON transactions(buyer_id);
CREATE INDEX IF NOT EXISTS idx_tx_seller ON transactions(seller_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM categories`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo categories/profiles/items")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO categories(id,name,description) VALUES
	  ('tops','Tops','Shirts, blouses and t-shirts'),
	  ('bottoms','Bottoms','Jeans, trousers and skirts'),
	  ('dresses','Dresses','Dresses and jumpsuits'),
	  ('outerwear','Outerwear','Jackets, coats and knitwear'),
	  ('shoes','Shoes','Footwear of all kinds'),
	  ('accessories','Accessories','Bags, scarves and jewelry')`)

	mkHash := func(raw string) string {
		h, _ := bcrypt.GenerateFromPassword([]byte(raw), 12)
		return string(h)
	}
	tx.MustExec(`INSERT INTO profiles(id,name,email,password_hash,points,role,location,bio,total_swaps,rating) VALUES
	  ('u-admin','Admin','admin@rewear.com',?,9999,'admin','San Francisco, CA','Administrator of the ReWear app',0,5.0),
	  ('u-demo','Demo User','demo@rewear.com',?,1000,'user','New York, NY','Demo user for testing the ReWear app',0,5.0)`,
		mkHash("Passw0rd!"), mkHash("Passw0rd!"))

	tx.MustExec(`INSERT INTO items(id,title,description,category_id,size,condition,points,tags_json,images_json,user_id,status) VALUES
	  ('i-denim','Vintage Denim Jacket','Classic 90s denim jacket, barely worn.','outerwear','M','Excellent',45,
	   '["vintage","denim"]','["items/i-denim/main.jpg"]','u-demo','active'),
	  ('i-sneakers','White Canvas Sneakers','Lightly used canvas sneakers.','shoes','L','Good',30,
	   '["casual","summer"]','["items/i-sneakers/main.jpg"]','u-demo','active')`)

	return tx.Commit()
}
