package api

import (
	"errors"
	"net/http"

	reqdto "lodgestay/internal/handler/dto/request"
	resdto "lodgestay/internal/handler/dto/response"
	"lodgestay/internal/handler/httperr"
	"lodgestay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OccupancyHandler struct {
	occupancyQueries queries.OccupancyQueries
}

func NewOccupancyHandler(occupancyQueries queries.OccupancyQueries) *OccupancyHandler {
	return &OccupancyHandler{occupancyQueries: occupancyQueries}
}

// @Summary Monthly occupancy report
// @Description Aggregate per-month occupancy for a lodge over a date range
// @Tags occupancy
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lodge ID"
// @Param from query string true "Range start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Range end (YYYY-MM-DD, exclusive)"
// @Param force_refresh query bool false "Bypass the report cache"
// @Success 200 {object} resdto.OccupancyReportResponse
// @Failure 400 {object} map[string]string
// @Router /lodges/{id}/occupancy [get]
func (h *OccupancyHandler) MonthlyReport(c *gin.Context) {
	lodgeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.OccupancyReportRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "from and to are required YYYY-MM-DD dates", nil)
		return
	}

	report, err := h.occupancyQueries.MonthlyReport(c.Request.Context(), lodgeID, req.From, req.To, req.ForceRefresh)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidDateRange) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "to must be after from", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOccupancyReport(report))
}
