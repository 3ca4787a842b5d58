package api

// AuthUser is the identity the auth endpoints return
type AuthUser struct {
	UserID    int64  `json:"userId"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Role      string `json:"role"`
}

// AuthResponse is returned by login, register and me. Token is only
// populated by token-issuing deployments; cookie sessions leave it null.
type AuthResponse struct {
	AuthUser
	Token string `json:"token,omitempty"`
}

// LoginRequest is the login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the registration request payload
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// NotificationType is the closed set of notification categories
type NotificationType string

const (
	NotificationProductUpdate  NotificationType = "PRODUCT_UPDATE"
	NotificationPriceDrop      NotificationType = "PRICE_DROP"
	NotificationBackInStock    NotificationType = "BACK_IN_STOCK"
	NotificationOrderConfirmed NotificationType = "ORDER_CONFIRMED"
	NotificationOrderShipped   NotificationType = "ORDER_SHIPPED"
	NotificationCartReminder   NotificationType = "CART_REMINDER"
	NotificationWishlistSale   NotificationType = "WISHLIST_SALE"
)

// Notification is one entry in the user's notification feed
type Notification struct {
	ID              int64            `json:"id"`
	Message         string           `json:"message"`
	Type            NotificationType `json:"type"`
	Timestamp       string           `json:"timestamp"`
	Read            bool             `json:"read"`
	RelatedEntityID int64            `json:"relatedEntityId,omitempty"`
}

// ProductImage is one image attached to a product
type ProductImage struct {
	ID           int64  `json:"id"`
	URL          string `json:"url"`
	AltText      string `json:"altText"`
	IsPrimary    bool   `json:"isPrimary"`
	DisplayOrder int    `json:"displayOrder"`
}

// Product is a catalog listing entry
type Product struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Price        float64 `json:"price"`
	CategoryName string  `json:"categoryName"`
	BrandName    string  `json:"brandName,omitempty"`
	Condition    string  `json:"condition"`
	ThumbnailURL string  `json:"thumbnailUrl,omitempty"`
	IsPromoted   bool    `json:"isPromoted"`
}

// DetailedProduct is the full product view
type DetailedProduct struct {
	Product
	Description       string         `json:"description"`
	QuantityAvailable int            `json:"quantityAvailable"`
	ConditionNotes    string         `json:"conditionNotes,omitempty"`
	Images            []ProductImage `json:"images"`
}

// ProductPage is one page of catalog results
type ProductPage struct {
	Content       []Product `json:"content"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
}

// ProductFilters narrows a catalog listing
type ProductFilters struct {
	Query     string
	Category  string
	Brand     string
	MinPrice  float64
	MaxPrice  float64
	Condition string
	Sort      string
	Page      int
	Size      int
}

// CartProduct is the product snapshot inside a cart line
type CartProduct struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Price        float64 `json:"price"`
	ThumbnailURL string  `json:"thumbnailUrl,omitempty"`
}

// CartItem is one line of the user's cart
type CartItem struct {
	ID       int64       `json:"id"`
	Quantity int         `json:"quantity"`
	Product  CartProduct `json:"product"`
	SubTotal float64     `json:"subTotal"`
}

// CheckoutRequest is the checkout submission payload
type CheckoutRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	CouponCode    string `json:"couponCode,omitempty"`
	Street        string `json:"street"`
	Number        string `json:"number"`
	PostalCode    string `json:"postalCode"`
	City          string `json:"city"`
	Country       string `json:"country"`
}

// CheckoutResponse is the checkout result
type CheckoutResponse struct {
	OrderID       int64   `json:"orderId"`
	TotalAmount   float64 `json:"totalAmount"`
	PaymentStatus string  `json:"paymentStatus"`
	TransactionID string  `json:"transactionId"`
}

// UserProfile is the editable account profile
type UserProfile struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Street      string `json:"street"`
	Number      string `json:"number"`
	PostalCode  string `json:"postalCode"`
	City        string `json:"city"`
	Country     string `json:"country"`
}
