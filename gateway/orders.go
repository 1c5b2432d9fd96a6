package gateway

import (
	"net/http"

	"github.com/example/bookshop/pkg/models"
	"github.com/example/bookshop/pkg/service"
	"github.com/gin-gonic/gin"
)

// orderJSON renders the full order with the item blob decoded.
func orderJSON(o *models.Order) gin.H {
	return gin.H{
		"id":                 o.ID,
		"orderNumber":        o.OrderNumber,
		"items":              o.LineItems(),
		"total":              o.Total,
		"status":             o.Status,
		"paymentStatus":      o.PaymentStatus,
		"paymentMethod":      o.PaymentMethod,
		"shippingName":       o.ShippingName,
		"shippingEmail":      o.ShippingEmail,
		"shippingPhone":      o.ShippingPhone,
		"shippingAddress":    o.ShippingAddress,
		"shippingCity":       o.ShippingCity,
		"shippingArea":       o.ShippingArea,
		"shippingPostalCode": o.ShippingPostalCode,
		"adminNotes":         o.AdminNotes,
		"trackingNumber":     o.TrackingNumber,
		"deliveryDate":       o.DeliveryDate,
		"createdAt":          o.CreatedAt,
		"updatedAt":          o.UpdatedAt,
	}
}

func (g *Gateway) createOrder(c *gin.Context) {
	var in service.CreateOrderInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := g.orders.Create(c.Request.Context(), in)
	if err != nil {
		g.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order": gin.H{
			"id":          order.ID,
			"orderNumber": order.OrderNumber,
			"status":      order.Status,
		},
	})
}

func (g *Gateway) listOrders(c *gin.Context) {
	orders, pagination, err := g.orders.List(c.Request.Context(), service.ListOrdersInput{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Email:  c.Query("email"),
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", 10),
	})
	if err != nil {
		g.fail(c, err)
		return
	}

	list := make([]gin.H, len(orders))
	for i := range orders {
		list[i] = orderJSON(&orders[i])
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":     list,
		"pagination": pagination,
	})
}

func (g *Gateway) getOrder(c *gin.Context) {
	order, err := g.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, orderJSON(order))
}

func (g *Gateway) updateOrderStatus(c *gin.Context) {
	var in service.UpdateStatusInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in.Actor = c.GetString("adminEmail")

	order, err := g.orders.UpdateStatus(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		g.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   orderJSON(order),
	})
}

func (g *Gateway) deleteOrder(c *gin.Context) {
	if err := g.orders.Delete(c.Request.Context(), c.Param("id"), c.GetString("adminEmail")); err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
