package models

import (
	"encoding/json"
	"time"
)

type OrderStatus string

// Lifecycle states. The usual progression is pending -> approved ->
// out_for_delivery -> delivered, with cancelled reachable from any state.
// The progression is advisory: status updates do not reject any edge, and
// side effects key off the destination state versus the prior one (see
// service.UpdateOrderStatus).
const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusApproved       OrderStatus = "approved"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderStatuses is the closed set of valid status values.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusApproved,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

type Order struct {
	ID            string        `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderNumber   string        `gorm:"type:varchar(20);uniqueIndex;not null" json:"orderNumber"`
	// Items is the raw JSON blob of []OrderItem. It stays in the marshaled
	// form so cache snapshots round-trip intact; API responses decode it
	// through LineItems instead of exposing the blob.
	Items         string        `gorm:"type:text" json:"items"`
	Total         float64       `gorm:"type:decimal(10,2)" json:"total"`
	Status        OrderStatus   `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"paymentStatus"`
	PaymentMethod string        `gorm:"type:varchar(30)" json:"paymentMethod,omitempty"`

	ShippingName       string `gorm:"type:varchar(100);not null" json:"shippingName"`
	ShippingEmail      string `gorm:"type:varchar(100);not null;index" json:"shippingEmail"`
	ShippingPhone      string `gorm:"type:varchar(30);not null" json:"shippingPhone"`
	ShippingAddress    string `gorm:"type:varchar(255);not null" json:"shippingAddress"`
	ShippingCity       string `gorm:"type:varchar(60);not null" json:"shippingCity"`
	ShippingArea       string `gorm:"type:varchar(60)" json:"shippingArea,omitempty"`
	ShippingPostalCode string `gorm:"type:varchar(15)" json:"shippingPostalCode,omitempty"`

	AdminNotes     string     `gorm:"type:text" json:"adminNotes,omitempty"`
	TrackingNumber string     `gorm:"type:varchar(60)" json:"trackingNumber,omitempty"`
	DeliveryDate   *time.Time `json:"deliveryDate,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of a purchase. Items are captured at creation time
// and stored denormalized inside Order.Items.
type OrderItem struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Grade    string  `json:"grade,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// LineItems decodes the stored item blob. A corrupt blob yields an empty
// slice rather than an error; callers render what they can.
func (o *Order) LineItems() []OrderItem {
	var items []OrderItem
	if err := json.Unmarshal([]byte(o.Items), &items); err != nil {
		return nil
	}
	return items
}

func (o *Order) SetLineItems(items []OrderItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	o.Items = string(data)
	return nil
}
