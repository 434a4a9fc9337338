package client

import (
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// Enumerations
// =============================================================================

// Role is the backend user role. ADMIN and SELLER both grant access to the
// admin console on this side; any server-side distinction is not visible here.
type Role string

const (
	RoleUser   Role = "USER"
	RoleSeller Role = "SELLER"
	RoleAdmin  Role = "ADMIN"
)

// OrderStatus is the backend order lifecycle state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderReturned   OrderStatus = "RETURNED"
)

// PaymentStatus mirrors the backend payment lifecycle.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// PaymentMethod enumerates accepted payment instruments.
type PaymentMethod string

const (
	PaymentCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentPayPal     PaymentMethod = "PAYPAL"
	PaymentStripe     PaymentMethod = "STRIPE"
	PaymentCOD        PaymentMethod = "COD"
)

// AddressType labels a saved address.
type AddressType string

const (
	AddressHome  AddressType = "HOME"
	AddressWork  AddressType = "WORK"
	AddressOther AddressType = "OTHER"
)

// =============================================================================
// Entities
// =============================================================================

// Profile is the display data for the signed-in user.
type Profile struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Role        Role   `json:"role"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"role"`
}

// Profile builds a Profile from the auth payload. The backend does not
// return the numeric user id at login; it arrives with later profile reads.
func (a AuthResponse) Profile() Profile {
	return Profile{
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Role:      a.Role,
	}
}

// Product is a catalog entry.
type Product struct {
	ID            int64             `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	Price         decimal.Decimal   `json:"price"`
	DiscountPrice *decimal.Decimal  `json:"discountPrice,omitempty"`
	StockQuantity int               `json:"stockQuantity"`
	Brand         string            `json:"brand,omitempty"`
	Images        []string          `json:"images,omitempty"`
	ImageURL      string            `json:"imageUrl,omitempty"`
	CategoryID    int64             `json:"categoryId,omitempty"`
	CategoryName  string            `json:"categoryName,omitempty"`
	AverageRating float64           `json:"averageRating,omitempty"`
	TotalReviews  int               `json:"totalReviews,omitempty"`
	SKU           string            `json:"sku,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Featured      bool              `json:"featured"`
	Active        bool              `json:"active"`
}

// EffectivePrice returns the discount price when one is set.
func (p Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil && p.DiscountPrice.IsPositive() {
		return *p.DiscountPrice
	}
	return p.Price
}

// Category is a product category reference.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	ParentID    int64  `json:"parentId,omitempty"`
	ParentName  string `json:"parentName,omitempty"`
}

// CartItem is one product line inside a cart snapshot. Lines have no
// identity of their own across fetches.
type CartItem struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductImage string          `json:"productImage,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Cart is the server's view of the shopping cart. TotalItems and
// TotalAmount are computed server-side and trusted as-is.
type Cart struct {
	ID          int64           `json:"id"`
	Items       []CartItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	TotalItems  int             `json:"totalItems"`
}

// Address is a saved address-book entry.
type Address struct {
	ID           int64       `json:"id,omitempty"`
	FullName     string      `json:"fullName"`
	PhoneNumber  string      `json:"phoneNumber"`
	AddressLine1 string      `json:"addressLine1"`
	AddressLine2 string      `json:"addressLine2,omitempty"`
	City         string      `json:"city"`
	State        string      `json:"state"`
	Country      string      `json:"country"`
	ZipCode      string      `json:"zipCode"`
	Type         AddressType `json:"type,omitempty"`
}

// ShippingAddress is the address captured at checkout.
type ShippingAddress struct {
	FullName     string `json:"fullName"`
	PhoneNumber  string `json:"phoneNumber"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	Country      string `json:"country"`
	ZipCode      string `json:"zipCode"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID       int64           `json:"id"`
	Product  *Product        `json:"product,omitempty"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Order is a placed order as reported by the backend.
type Order struct {
	ID              int64            `json:"id"`
	OrderNumber     string           `json:"orderNumber"`
	Items           []OrderItem      `json:"orderItems,omitempty"`
	Subtotal        decimal.Decimal  `json:"subtotal"`
	Tax             decimal.Decimal  `json:"tax"`
	ShippingCost    decimal.Decimal  `json:"shippingCost"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	Status          OrderStatus      `json:"status"`
	PaymentStatus   PaymentStatus    `json:"paymentStatus"`
	PaymentMethod   PaymentMethod    `json:"paymentMethod,omitempty"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	TrackingNumber  string           `json:"trackingNumber,omitempty"`
	OrderDate       time.Time        `json:"orderDate"`
}

// AdminStats carries the aggregate counts for the admin dashboard.
type AdminStats struct {
	TotalProducts   int64 `json:"totalProducts"`
	TotalOrders     int64 `json:"totalOrders"`
	TotalUsers      int64 `json:"totalUsers"`
	TotalCategories int64 `json:"totalCategories"`
	ActiveProducts  int64 `json:"activeProducts"`
	PendingOrders   int64 `json:"pendingOrders"`
}

// =============================================================================
// Pagination
// =============================================================================

// Page is the Spring-style pagination envelope paginated reads decode.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

// ListOptions carries the paging and sorting parameters of catalog reads.
// Zero values are omitted so the backend applies its own defaults
// (page 0, size 12, sort by id descending).
type ListOptions struct {
	Page    int
	Size    int
	SortBy  string
	SortDir string
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Size > 0 {
		v.Set("size", strconv.Itoa(o.Size))
	}
	if o.SortBy != "" {
		v.Set("sortBy", o.SortBy)
	}
	if o.SortDir != "" {
		v.Set("sortDir", o.SortDir)
	}
	return v
}
