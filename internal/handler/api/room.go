package api

import (
	"net/http"

	resdto "lodgestay/internal/handler/dto/response"
	"lodgestay/internal/handler/httperr"
	"lodgestay/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomQueries queries.RoomQueries
}

func NewRoomHandler(roomQueries queries.RoomQueries) *RoomHandler {
	return &RoomHandler{roomQueries: roomQueries}
}

// @Summary List lodge rooms
// @Tags rooms
// @Produce json
// @Param id path string true "Lodge ID"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Router /lodges/{id}/rooms [get]
func (h *RoomHandler) ListRooms(c *gin.Context) {
	lodgeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	views, err := h.roomQueries.ListByLodge(c.Request.Context(), lodgeID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomViews(views))
}
