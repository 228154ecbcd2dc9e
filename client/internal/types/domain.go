package types

import (
	"encoding/json"
	"time"
)

// ------------------------------
// Core Domain Entities
// ------------------------------
//
// Records decode leniently: a field of an unexpected type reads as its zero
// value instead of failing the enclosing list. Raw keeps the element exactly
// as the backend sent it.

// Product is a produce listing in the storefront catalogue.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"` // name or id when populated
	Subcategory string    `json:"subcategory,omitempty"`
	Price       float64   `json:"price"`
	Unit        string    `json:"unit,omitempty"`
	Stock       int       `json:"stock"`
	Image       string    `json:"image,omitempty"`
	Images      []string  `json:"images,omitempty"`
	Featured    bool      `json:"featured,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON accepts the identifier as either "id" or "_id" and never
// fails on field types.
func (p *Product) UnmarshalJSON(b []byte) error {
	*p = Product{Raw: rawOf(b)}
	f := fieldsOf(b)
	if f == nil {
		return nil
	}
	p.ID = firstText(f["id"], f["_id"])
	p.Name = textOf(f["name"])
	p.Description = textOf(f["description"])
	p.Category = textOf(f["category"])
	p.Subcategory = textOf(f["subcategory"])
	p.Price = floatOf(f["price"])
	p.Unit = textOf(f["unit"])
	p.Stock = intOf(f["stock"])
	p.Image = textOf(f["image"])
	p.Images = stringsOf(f["images"])
	p.Featured = boolOf(f["featured"])
	p.CreatedAt = timeOf(f["createdAt"])
	p.UpdatedAt = timeOf(f["updatedAt"])
	return nil
}

// OrderItem is one line of an order.
type OrderItem struct {
	Product  json.RawMessage `json:"product,omitempty"`
	Name     string          `json:"name,omitempty"`
	Quantity int             `json:"quantity"`
	Price    float64         `json:"price"`
}

func (it *OrderItem) UnmarshalJSON(b []byte) error {
	*it = OrderItem{}
	f := fieldsOf(b)
	if f == nil {
		return nil
	}
	it.Product = rawOf(f["product"])
	it.Name = textOf(f["name"])
	it.Quantity = intOf(f["quantity"])
	it.Price = floatOf(f["price"])
	return nil
}

// Order is a customer order. User and ShippingAddress are kept raw because
// the backend sends them either as ids or as populated documents.
type Order struct {
	ID              string          `json:"id"`
	User            json.RawMessage `json:"user,omitempty"`
	Items           []OrderItem     `json:"items,omitempty"`
	TotalAmount     float64         `json:"totalAmount"`
	Status          string          `json:"status,omitempty"`
	PaymentStatus   string          `json:"paymentStatus,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	ShippingAddress json.RawMessage `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time       `json:"createdAt,omitempty"`
	UpdatedAt       time.Time       `json:"updatedAt,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// UnmarshalJSON accepts the identifier as either "id" or "_id" and never
// fails on field types.
func (o *Order) UnmarshalJSON(b []byte) error {
	*o = Order{Raw: rawOf(b)}
	f := fieldsOf(b)
	if f == nil {
		return nil
	}
	o.ID = firstText(f["id"], f["_id"])
	o.User = rawOf(f["user"])
	if isArray(f["items"]) {
		// OrderItem decoding cannot fail on a valid array.
		_ = json.Unmarshal(f["items"], &o.Items)
	}
	o.TotalAmount = floatOf(f["totalAmount"])
	o.Status = textOf(f["status"])
	o.PaymentStatus = textOf(f["paymentStatus"])
	o.PaymentMethod = textOf(f["paymentMethod"])
	o.ShippingAddress = rawOf(f["shippingAddress"])
	o.CreatedAt = timeOf(f["createdAt"])
	o.UpdatedAt = timeOf(f["updatedAt"])
	return nil
}

// DailyStat is one bucket of the order stats time series.
type DailyStat struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// UnmarshalJSON accepts the bucket key as either "date" or "_id"
// (aggregation pipelines group by _id).
func (d *DailyStat) UnmarshalJSON(b []byte) error {
	*d = DailyStat{}
	f := fieldsOf(b)
	if f == nil {
		return nil
	}
	d.Date = firstText(f["date"], f["_id"])
	d.Orders = intOf(f["orders"])
	d.Revenue = floatOf(f["revenue"])
	return nil
}
