package gateway

import (
	"net/http"

	"github.com/example/bookshop/pkg/service"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) listProducts(c *gin.Context) {
	products, pagination, err := g.catalog.List(c.Request.Context(), service.ListProductsInput{
		Category:      c.Query("category"),
		Subject:       c.Query("subject"),
		Series:        c.Query("series"),
		Search:        c.Query("search"),
		NewCollection: boolQuery(c, "newCollection"),
		Featured:      boolQuery(c, "featured"),
		Page:          intQuery(c, "page", 1),
		Limit:         intQuery(c, "limit", 12),
	})
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"pagination": pagination,
	})
}

func (g *Gateway) getProduct(c *gin.Context) {
	product, err := g.catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (g *Gateway) createProduct(c *gin.Context) {
	var in service.ProductInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := g.catalog.Create(c.Request.Context(), in, c.GetString("adminEmail"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

func (g *Gateway) updateProduct(c *gin.Context) {
	var in service.ProductInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := g.catalog.Update(c.Request.Context(), c.Param("id"), in, c.GetString("adminEmail"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (g *Gateway) deleteProduct(c *gin.Context) {
	if err := g.catalog.Delete(c.Request.Context(), c.Param("id"), c.GetString("adminEmail")); err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
