package delivery

import (
	"net/http"

	"github.com/CeKulit/cekulit-backend/domain"
	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productUC domain.ProductUseCase
}

func NewProductHandler(r *gin.Engine, productUC domain.ProductUseCase) {
	handler := &ProductHandler{productUC: productUC}
	r.GET("/products", handler.Search)
}

func (h *ProductHandler) Search(c *gin.Context) {
	products, err := h.productUC.Search(c.Request.Context(), c.Query("q"), c.Query("desc"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Scraping failed",
		})
		return
	}
	c.JSON(http.StatusOK, products)
}
