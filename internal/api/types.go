package api

import "time"

const apiTimestampLayout = time.RFC3339

// Entity is implemented by every record type the console lists.
type Entity interface {
	EntityID() string
}

// CustomerRef is the customer snapshot embedded in an order.
type CustomerRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProductRef is the product snapshot embedded in an order.
type ProductRef struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Order statuses accepted by the backend.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// OrderStatuses lists the valid order statuses in workflow order.
var OrderStatuses = []string{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled}

// Order mirrors a record from /orders.
type Order struct {
	ID        string      `json:"id"`
	Number    string      `json:"number"`
	Customer  CustomerRef `json:"customer"`
	Product   ProductRef  `json:"product"`
	Quantity  int         `json:"quantity"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt string      `json:"created_at"`
}

// EntityID implements Entity.
func (o Order) EntityID() string { return o.ID }

// Created parses the order's creation timestamp, zero time on failure.
func (o Order) Created() time.Time {
	t, err := time.Parse(apiTimestampLayout, o.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// User mirrors a record from /users.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// EntityID implements Entity.
func (u User) EntityID() string { return u.ID }

// Product mirrors a record from /products. No is a 1-based display ordinal
// the backend keeps contiguous; the client renumbers it after deletes.
type Product struct {
	ID       string  `json:"id"`
	No       int     `json:"no"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
}

// EntityID implements Entity.
func (p Product) EntityID() string { return p.ID }

// LogEntry mirrors an audit log record from /reports.
type LogEntry struct {
	ID        string `json:"id"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	Entity    string `json:"entity"`
	Detail    string `json:"detail"`
	CreatedAt string `json:"created_at"`
}

// EntityID implements Entity.
func (l LogEntry) EntityID() string { return l.ID }

// Statistics aggregates order counts by status for the dashboard cards.
type Statistics struct {
	Pending      int     `json:"pending"`
	Processing   int     `json:"processing"`
	Completed    int     `json:"completed"`
	Cancelled    int     `json:"cancelled"`
	TotalRevenue float64 `json:"total_revenue"`
}

// PageMeta is the server-side pagination block returned with a collection.
// The client projects over the full fetched item set; the metadata is kept
// verbatim for display.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// ListParams configure a collection fetch.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
	Status  string
}

// envelope is the standard response wrapper.
type envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// pageData is the paginated collection payload inside an envelope.
type pageData[T any] struct {
	Items []T `json:"items"`
	PageMeta
}

// loginData is the payload returned by /auth/login.
type loginData struct {
	Token string `json:"token"`
}
