package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"bedspace/internal/app/dto"
	capacityapp "bedspace/internal/app/handlers/capacity"
	premisesapp "bedspace/internal/app/handlers/premises"
	"bedspace/internal/app/queries"
)

// PremisesHandler wires premises and capacity queries to HTTP.
type PremisesHandler struct {
	Queries queries.Bus
}

func (h PremisesHandler) List(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "premises handler unavailable"})
		return
	}
	query := premisesapp.ListPremisesQuery{}
	if day, ok := parseDate(c.Query("day")); ok {
		query.Day = day
	}
	result, err := queries.Ask[premisesapp.ListPremisesQuery, dto.PremisesList](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PremisesHandler) Get(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "premises handler unavailable"})
		return
	}
	query := premisesapp.GetPremisesQuery{PremisesID: c.Param("id")}
	if day, ok := parseDate(c.Query("day")); ok {
		query.Day = day
	}
	result, err := queries.Ask[premisesapp.GetPremisesQuery, dto.PremisesDetail](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h PremisesHandler) Capacity(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "premises handler unavailable"})
		return
	}
	start, okStart := parseDate(c.Query("start"))
	end, okEnd := parseDate(c.Query("end"))
	if !okStart || !okEnd {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end query params are required as YYYY-MM-DD"})
		return
	}
	query := capacityapp.GetTimelineQuery{
		PremisesID:      c.Param("id"),
		Start:           start,
		End:             end,
		Characteristics: splitCSV(c.Query("characteristics")),
	}
	result, err := queries.Ask[capacityapp.GetTimelineQuery, dto.CapacityTimeline](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ PremisesHTTP = PremisesHandler{}
