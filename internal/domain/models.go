package domain

// Item statuses. New listings start pending and go live only after moderation.
const (
	ItemPending  = "pending"
	ItemActive   = "active"
	ItemSwapped  = "swapped"
	ItemRejected = "rejected"
)

// Swap request statuses. Accepted and rejected are terminal.
const (
	SwapPending  = "pending"
	SwapAccepted = "accepted"
	SwapRejected = "rejected"
)

// Transaction types and statuses.
const (
	TxSwap     = "swap"
	TxPurchase = "purchase"

	TxPending   = "pending"
	TxCompleted = "completed"
	TxCancelled = "cancelled"
)

type Category struct {
	ID          string `db:"id" json:"id"`
	Name        string `db:"name" json:"name"`
	Description string `db:"description" json:"description,omitempty"`
	Icon        string `db:"icon" json:"icon,omitempty"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}

type Item struct {
	ID          string `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	CategoryID  string `db:"category_id" json:"category_id"`
	Size        string `db:"size" json:"size"`
	Condition   string `db:"condition" json:"condition"` // Like New | Excellent | Good | Fair
	Points      int    `db:"points" json:"points"`
	TagsJSON    string `db:"tags_json" json:"-"`
	ImagesJSON  string `db:"images_json" json:"-"`
	UserID      string `db:"user_id" json:"user_id"`
	Status      string `db:"status" json:"status"`
	Views       int    `db:"views" json:"views"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	UpdatedAt   string `db:"updated_at" json:"updated_at,omitempty"`

	Tags   []string `db:"-" json:"tags"`
	Images []string `db:"-" json:"images"`

	CategoryName string `db:"category_name" json:"category_name,omitempty"`
	OwnerName    string `db:"owner_name" json:"owner_name,omitempty"`
}

type SwapRequest struct {
	ID          string `db:"id" json:"id"`
	ItemID      string `db:"item_id" json:"item_id"`
	RequesterID string `db:"requester_id" json:"requester_id"`
	OwnerID     string `db:"owner_id" json:"owner_id"`
	Message     string `db:"message" json:"message"`
	Status      string `db:"status" json:"status"`
	CreatedAt   string `db:"created_at" json:"created_at"`
	UpdatedAt   string `db:"updated_at" json:"updated_at,omitempty"`

	ItemTitle     string `db:"item_title" json:"item_title,omitempty"`
	RequesterName string `db:"requester_name" json:"requester_name,omitempty"`
}

type Transaction struct {
	ID        string `db:"id" json:"id"`
	ItemID    string `db:"item_id" json:"item_id"`
	BuyerID   string `db:"buyer_id" json:"buyer_id"`
	SellerID  string `db:"seller_id" json:"seller_id"`
	Points    int    `db:"points" json:"points"`
	Type      string `db:"type" json:"type"` // swap | purchase
	Status    string `db:"status" json:"status"`
	CreatedAt string `db:"created_at" json:"created_at"`

	ItemTitle string `db:"item_title" json:"item_title,omitempty"`
}
