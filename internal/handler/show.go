package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/booking-directory/internal/service"
)

// ListShows returns every show ordered by start time.
func (h *DirectoryHandler) ListShows(c echo.Context) error {
    shows, err := h.Directory.ListShows(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"shows": shows})
}

// CreateShow links an artist to a venue.  start_time is RFC 3339; an
// unknown artist_id or venue_id is a 400.
func (h *DirectoryHandler) CreateShow(c echo.Context) error {
    var in service.ShowInput
    if err := c.Bind(&in); err != nil {
        return bindError(c, err)
    }
    id, err := h.Mutations.CreateShow(c.Request().Context(), in)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id})
}
