package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/liketelecom/fieldservice/internal/core/domain"
	"github.com/liketelecom/fieldservice/internal/core/ports"
)

// defaultRankingLimit is the display truncation applied when the caller does
// not ask for a specific size.
const defaultRankingLimit = 5

type RankingHandler struct {
	service ports.RankingService
}

func NewRankingHandler(service ports.RankingService) *RankingHandler {
	return &RankingHandler{service: service}
}

type rankingEntryResponse struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type rankingResponse struct {
	Role    string                 `json:"role"`
	Entries []rankingEntryResponse `json:"entries"`
}

// Monthly handles GET /v1/rankings.
//
// @Summary      Monthly leaderboard for a role
// @Tags         rankings
// @Produce      json
// @Security     BearerAuth
// @Param        role   query     string  true   "technician or helper"
// @Param        limit  query     int     false  "Max entries (default 5, 0 = all)"
// @Success      200    {object}  rankingResponse
// @Failure      422    {object}  map[string]string
// @Router       /v1/rankings [get]
func (h *RankingHandler) Monthly(c echo.Context) error {
	role := c.QueryParam("role")
	if role == "" {
		role = domain.RoleTechnician
	}

	limit := defaultRankingLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
		}
		limit = n
	}

	entries, err := h.service.Monthly(c.Request().Context(), role)
	if err != nil {
		return err
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	resp := rankingResponse{Role: role, Entries: make([]rankingEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, rankingEntryResponse{
			UserID: e.User.ID,
			Name:   e.User.Name,
			Points: e.Points,
		})
	}
	return c.JSON(http.StatusOK, resp)
}
