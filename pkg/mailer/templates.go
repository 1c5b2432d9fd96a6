package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/example/bookshop/pkg/models"
)

// Templates interpolate order fields with html/template, so customer-supplied
// strings (names, addresses, item titles) are escaped before they reach the
// rendered email.
var emailTemplates = template.Must(template.New("emails").Parse(`
{{define "items"}}
<table width="100%" cellpadding="6" cellspacing="0" style="border-collapse:collapse">
  <tr style="background:#f5f5f5">
    <th align="left">Book</th><th align="left">Grade</th><th align="right">Price</th><th align="right">Qty</th>
  </tr>
  {{range .Items}}
  <tr>
    <td>{{.Title}}</td><td>{{.Grade}}</td><td align="right">Rs. {{printf "%.0f" .Price}}</td><td align="right">{{.Quantity}}</td>
  </tr>
  {{end}}
</table>
<p><strong>Total: Rs. {{printf "%.0f" .Order.Total}}</strong></p>
{{end}}

{{define "shipping"}}
<p>
  {{.Order.ShippingName}}<br>
  {{.Order.ShippingAddress}}{{if .Order.ShippingArea}}, {{.Order.ShippingArea}}{{end}}<br>
  {{.Order.ShippingCity}}{{if .Order.ShippingPostalCode}} {{.Order.ShippingPostalCode}}{{end}}<br>
  {{.Order.ShippingPhone}}
</p>
{{end}}

{{define "admin_new_order"}}
<h2>New order {{.Order.OrderNumber}}</h2>
<p>A new order has been placed by {{.Order.ShippingName}} ({{.Order.ShippingEmail}}).</p>
{{template "items" .}}
<h3>Ship to</h3>
{{template "shipping" .}}
<p><a href="{{.BaseURL}}/admin/orders">Open the admin panel</a> to review it.</p>
{{end}}

{{define "approved"}}
<h2>Order {{.Order.OrderNumber}} approved</h2>
<p>Hi {{.Order.ShippingName}}, your order has been approved and is being prepared.</p>
{{template "items" .}}
<p>We will email you again when it is out for delivery.</p>
{{end}}

{{define "out_for_delivery"}}
<h2>Order {{.Order.OrderNumber}} is out for delivery</h2>
<p>Hi {{.Order.ShippingName}}, your books are on the way to:</p>
{{template "shipping" .}}
{{if .Order.TrackingNumber}}<p>Tracking number: <strong>{{.Order.TrackingNumber}}</strong></p>{{end}}
{{end}}

{{define "delivered"}}
<h2>Order {{.Order.OrderNumber}} delivered</h2>
<p>Hi {{.Order.ShippingName}}, your order was delivered{{if .Order.DeliveryDate}} on {{.Order.DeliveryDate.Format "2 Jan 2006"}}{{end}}. Thank you for shopping with us!</p>
{{template "items" .}}
{{end}}
`))

type templateData struct {
	Order   *models.Order
	Items   []models.OrderItem
	BaseURL string
}

var subjects = map[Kind]string{
	KindAdminNewOrder:  "New order %s",
	KindApproved:       "Your order %s has been approved",
	KindOutForDelivery: "Your order %s is out for delivery",
	KindDelivered:      "Your order %s has been delivered",
}

// Render produces the subject and HTML body for one notification kind.
func Render(kind Kind, order *models.Order, baseURL string) (subject, html string, err error) {
	format, ok := subjects[kind]
	if !ok {
		return "", "", fmt.Errorf("unknown notification kind %q", kind)
	}

	var buf bytes.Buffer
	data := templateData{Order: order, Items: order.LineItems(), BaseURL: baseURL}
	if err := emailTemplates.ExecuteTemplate(&buf, string(kind), data); err != nil {
		return "", "", err
	}
	return fmt.Sprintf(format, order.OrderNumber), buf.String(), nil
}
