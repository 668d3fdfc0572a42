package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/dashboard"
)

type DashboardHandler struct {
	sales *dashboard.SalesEngine
}

func NewDashboardHandler(sales *dashboard.SalesEngine) *DashboardHandler {
	return &DashboardHandler{sales: sales}
}

// GetSales returns sales metrics for the optional date range and
// product/category filters
func (h *DashboardHandler) GetSales(c *gin.Context) {
	start, err := dashboard.ParseStart(c.Query("start_date"))
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := dashboard.ParseEnd(c.Query("end_date"))
	if err != nil {
		respondError(c, err)
		return
	}

	report, err := h.sales.Sales(c.Request.Context(), dashboard.SalesQuery{
		Start:       start,
		End:         end,
		CategoryIDs: c.QueryArray("category_ids"),
		ProductIDs:  c.QueryArray("product_ids"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
