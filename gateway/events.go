package gateway

import (
	"net/http"

	"github.com/example/bookshop/pkg/service"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) listEvents(c *gin.Context) {
	events, pagination, err := g.events.List(c.Request.Context(), service.ListEventsInput{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 10),
	})
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"events":     events,
		"pagination": pagination,
	})
}

func (g *Gateway) getEvent(c *gin.Context) {
	e, err := g.events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (g *Gateway) createEvent(c *gin.Context) {
	var in service.EventInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := g.events.Create(c.Request.Context(), in, c.GetString("adminEmail"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "event": e})
}

func (g *Gateway) updateEvent(c *gin.Context) {
	var in service.EventInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := g.events.Update(c.Request.Context(), c.Param("id"), in, c.GetString("adminEmail"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "event": e})
}

func (g *Gateway) deleteEvent(c *gin.Context) {
	if err := g.events.Delete(c.Request.Context(), c.Param("id"), c.GetString("adminEmail")); err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
