package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"bedspace/internal/app/dto"
	occupancyapp "bedspace/internal/app/handlers/occupancy"
	"bedspace/internal/app/queries"
)

// OccupancyHandler wires the national occupancy report to HTTP.
type OccupancyHandler struct {
	Queries queries.Bus
}

func (h OccupancyHandler) National(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "occupancy handler unavailable"})
		return
	}
	start, okStart := parseDate(c.Query("start"))
	end, okEnd := parseDate(c.Query("end"))
	if !okStart || !okEnd {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end query params are required as YYYY-MM-DD"})
		return
	}
	query := occupancyapp.NationalReportQuery{
		Start:           start,
		End:             end,
		Characteristics: splitCSV(c.Query("characteristics")),
		PremisesIDs:     splitCSV(c.Query("premises")),
	}
	result, err := queries.Ask[occupancyapp.NationalReportQuery, dto.NationalOccupancyReport](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ OccupancyHTTP = OccupancyHandler{}
