package gateway

import (
	"net/http"

	"github.com/example/bookshop/pkg/service"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) listAnnouncements(c *gin.Context) {
	announcements, pagination, err := g.announcements.List(c.Request.Context(), service.ListAnnouncementsInput{
		Search:   c.Query("search"),
		Featured: boolQuery(c, "featured"),
		Page:     intQuery(c, "page", 1),
		Limit:    intQuery(c, "limit", 10),
	})
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"announcements": announcements,
		"pagination":    pagination,
	})
}

func (g *Gateway) getAnnouncement(c *gin.Context) {
	a, err := g.announcements.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (g *Gateway) createAnnouncement(c *gin.Context) {
	var in service.AnnouncementInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := g.announcements.Create(c.Request.Context(), in, c.GetString("adminEmail"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "announcement": a})
}

func (g *Gateway) updateAnnouncement(c *gin.Context) {
	var in service.AnnouncementInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := g.announcements.Update(c.Request.Context(), c.Param("id"), in, c.GetString("adminEmail"))
	if err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "announcement": a})
}

func (g *Gateway) deleteAnnouncement(c *gin.Context) {
	if err := g.announcements.Delete(c.Request.Context(), c.Param("id"), c.GetString("adminEmail")); err != nil {
		g.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
