package domain

import "time"

type CheckoutStatus string

const (
	CheckoutStatusPending   CheckoutStatus = "pending"
	CheckoutStatusConfirmed CheckoutStatus = "confirm"
	CheckoutStatusDone      CheckoutStatus = "done"
)

// Checkout is a booking of a catalog service. Email is the owner and is
// written only on insert.
type Checkout struct {
	ID           string         `json:"_id"`
	CustomerName string         `json:"customerName"`
	Email        string         `json:"email"`
	Img          string         `json:"img"`
	Date         string         `json:"date"`
	Service      string         `json:"service"`
	ServiceID    string         `json:"service_id"`
	Price        float64        `json:"price"`
	Status       CheckoutStatus `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// CheckoutFilter selects checkouts by owner. An empty Email selects all.
type CheckoutFilter struct {
	Email string
}

// InsertResult, UpdateResult and DeleteResult keep the response shapes the
// front end already consumes.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}
