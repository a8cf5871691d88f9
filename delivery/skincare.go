package delivery

import (
	"net/http"

	"github.com/CeKulit/cekulit-backend/domain"
	"github.com/gin-gonic/gin"
)

type SkincareHandler struct {
	skincareUC domain.SkincareUseCase
}

func NewSkincareHandler(r *gin.Engine, skincareUC domain.SkincareUseCase) {
	handler := &SkincareHandler{skincareUC: skincareUC}

	routes := r.Group("/skincare")
	{
		routes.GET("/list/:time", handler.List)
		routes.GET("/detail/:type/:time", handler.Detail)
		routes.GET("/detail/:type/:time/:name", handler.DetailByName)
	}
}

func (h *SkincareHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.skincareUC.List(c.Param("time")))
}

func (h *SkincareHandler) Detail(c *gin.Context) {
	steps, err := h.skincareUC.Detail(c.Param("type"), c.Param("time"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, steps)
}

func (h *SkincareHandler) DetailByName(c *gin.Context) {
	step, err := h.skincareUC.DetailByName(c.Param("type"), c.Param("time"), c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, step)
}
