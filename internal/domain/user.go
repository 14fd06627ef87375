package domain

import "time"

// CartItem is a pending purchase intent: a product reference plus quantity.
// Prices are never cached on cart items; product cost is authoritative.
type CartItem struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// Address is a free-text delivery address embedded in a user document.
type Address struct {
	ID      string `json:"_id"`
	Address string `json:"address"`
}

// OrderItem snapshots product fields at checkout time so later catalog
// changes never alter order history.
type OrderItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Cost      int64  `json:"cost"`
	Qty       int    `json:"qty"`
	Image     string `json:"image"`
}

// Order is an immutable record of one successful checkout, embedded in the
// owning user's orders sequence.
type Order struct {
	ID      string      `json:"_id"`
	Items   []OrderItem `json:"items"`
	Total   int64       `json:"total"`
	Address Address     `json:"address"`
	Date    string      `json:"date"`
}

// User represents a registered account. Cart, addresses and orders are
// embedded documents stored alongside the account row.
type User struct {
	ID           string     `json:"_id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Balance      int64      `json:"balance"`
	Cart         []CartItem `json:"cart"`
	Addresses    []Address  `json:"addresses"`
	Name         string     `json:"name"`
	Mobile       string     `json:"mobile"`
	Orders       []Order    `json:"orders"`
	CreatedAt    time.Time  `json:"-"`
}
