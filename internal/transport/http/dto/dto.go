package dto

import (
	"time"

	"github.com/chocobean/storefront/internal/service/models/message"
	"github.com/chocobean/storefront/internal/service/models/order"
	"github.com/chocobean/storefront/internal/service/models/orderitem"
	"github.com/chocobean/storefront/internal/service/models/user"
	"github.com/shopspring/decimal"
)

func init() {
	// Prices are JSON numbers on the wire, matching what the frontend reads.
	decimal.MarshalJSONWithoutQuotes = true
}

// Order is the wire representation of an order. Status always carries the
// canonical label, regardless of which alias was used on input.
type Order struct {
	OrderID    int64           `json:"orderId"`
	UserID     int64           `json:"userId"`
	UserName   string          `json:"userName"`
	OrderDate  time.Time       `json:"orderDate"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Status     string          `json:"status"`
	Items      []OrderItem     `json:"items"`
}

// OrderItem is one order line on the wire. Price is the unit price snapshot.
type OrderItem struct {
	ProductID          int64           `json:"productId"`
	ProductName        string          `json:"productName"`
	ProductDescription string          `json:"productDescription,omitempty"`
	Quantity           int             `json:"quantity"`
	Price              decimal.Decimal `json:"price"`
}

// CreateOrderRequest carries the requested lines. Total price and status are
// always computed server-side, so there is nothing else to accept here.
type CreateOrderRequest struct {
	Items []orderitem.NewLine `json:"items"`
}

// OrderFromModel converts a service layer Order to its wire shape.
func OrderFromModel(o order.Order) Order {
	items := make([]OrderItem, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItem{
			ProductID:          item.ProductID,
			ProductName:        item.ProductName,
			ProductDescription: item.ProductDescription,
			Quantity:           item.Quantity,
			Price:              item.Price,
		}
	}

	return Order{
		OrderID:    o.ID,
		UserID:     o.UserID,
		UserName:   o.UserName,
		OrderDate:  o.OrderDate.UTC(),
		TotalPrice: o.TotalPrice,
		Status:     o.Status.String(),
		Items:      items,
	}
}

// OrdersFromModels converts a slice of orders.
func OrdersFromModels(orders []order.Order) []Order {
	result := make([]Order, len(orders))
	for i, o := range orders {
		result[i] = OrderFromModel(o)
	}

	return result
}

// User is the wire representation of an account.
type User struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"userName"`
	Email     string    `json:"email"`
	Status    string    `json:"status,omitempty"`
	IsAdmin   bool      `json:"isAdmin,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserFromModel converts a service layer User to its wire shape.
func UserFromModel(u user.User) User {
	return User{
		ID:        u.ID,
		UserName:  u.UserName,
		Email:     u.Email,
		Status:    u.Status,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt.UTC(),
	}
}

// UsersFromModels converts a slice of users.
func UsersFromModels(users []user.User) []User {
	result := make([]User, len(users))
	for i, u := range users {
		result[i] = UserFromModel(u)
	}

	return result
}

// Profile is the wire representation of a user profile.
type Profile struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// ProfileFromModel converts a service layer Profile to its wire shape. A nil
// profile converts to the zero value, mirroring the empty object the
// frontend expects before a profile was saved.
func ProfileFromModel(p *user.Profile) Profile {
	if p == nil {
		return Profile{}
	}

	return Profile{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Phone:      p.Phone,
		Address:    p.Address,
		City:       p.City,
		PostalCode: p.PostalCode,
	}
}

// ToModel converts a wire Profile to its service layer shape.
func (p Profile) ToModel() user.Profile {
	return user.Profile{
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		Phone:      p.Phone,
		Address:    p.Address,
		City:       p.City,
		PostalCode: p.PostalCode,
	}
}

// RegisterRequest carries a signup submission.
type RegisterRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest carries a login submission.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the signup/login response.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// SendMessageRequest carries a new inbox message. The sender is taken from
// the verified token, not from the body.
type SendMessageRequest struct {
	ToUserID *int64 `json:"toUserId"`
	Subject  string `json:"subject"`
	Content  string `json:"content"`
}

// Message is the wire representation of an inbox message.
type Message struct {
	MessageID    int64     `json:"messageId"`
	FromUserID   int64     `json:"fromUserId"`
	FromUserName string    `json:"fromUserName,omitempty"`
	ToUserID     *int64    `json:"toUserId"`
	ToUserName   string    `json:"toUserName,omitempty"`
	Subject      string    `json:"subject"`
	Content      string    `json:"content"`
	IsRead       bool      `json:"isRead"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MessageFromModel converts a service layer Message to its wire shape.
func MessageFromModel(m message.Message) Message {
	return Message{
		MessageID:    m.ID,
		FromUserID:   m.FromUserID,
		FromUserName: m.FromUserName,
		ToUserID:     m.ToUserID,
		ToUserName:   m.ToUserName,
		Subject:      m.Subject,
		Content:      m.Content,
		IsRead:       m.IsRead,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

// MessagesFromModels converts a slice of messages.
func MessagesFromModels(messages []message.Message) []Message {
	result := make([]Message, len(messages))
	for i, m := range messages {
		result[i] = MessageFromModel(m)
	}

	return result
}
