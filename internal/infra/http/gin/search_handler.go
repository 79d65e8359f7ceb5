package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"bedspace/internal/app/dto"
	searchapp "bedspace/internal/app/handlers/search"
	"bedspace/internal/app/queries"
)

// SearchHandler wires placement search to HTTP.
type SearchHandler struct {
	Queries queries.Bus
}

type searchRequest struct {
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date"`
	Essential []string `json:"essential_characteristics"`
	Desirable []string `json:"desirable_characteristics"`
	ApType    string   `json:"ap_type"`
	Origin    *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"origin"`
}

func (h SearchHandler) Search(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search handler unavailable"})
		return
	}
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, okStart := parseDate(req.StartDate)
	end, okEnd := parseDate(req.EndDate)
	if !okStart || !okEnd {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start_date and end_date are required as YYYY-MM-DD"})
		return
	}
	query := searchapp.SearchSpacesQuery{
		Start:     start,
		End:       end,
		Essential: req.Essential,
		Desirable: req.Desirable,
		ApType:    req.ApType,
	}
	if req.Origin != nil {
		query.HasOrigin = true
		query.OriginLat = req.Origin.Lat
		query.OriginLon = req.Origin.Lon
	}
	result, err := queries.Ask[searchapp.SearchSpacesQuery, dto.SpaceSearchResults](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ SearchHTTP = SearchHandler{}
