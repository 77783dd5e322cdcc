package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/booking-directory/internal/service"
)

// ListVenues returns venues grouped by city and state.
func (h *DirectoryHandler) ListVenues(c echo.Context) error {
    groups, err := h.Directory.VenuesByLocation(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    noStore(c)
    return c.JSON(http.StatusOK, echo.Map{"areas": groups})
}

// SearchVenues matches venue names case-insensitively.
func (h *DirectoryHandler) SearchVenues(c echo.Context) error {
    res, err := h.Directory.SearchVenues(c.Request().Context(), searchTerm(c))
    if err != nil {
        return respondError(c, err)
    }
    noStore(c)
    return c.JSON(http.StatusOK, res)
}

// GetVenue returns a venue with its past and upcoming shows.
func (h *DirectoryHandler) GetVenue(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return invalidID(c)
    }
    det, err := h.Directory.VenueDetail(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    noStore(c)
    return c.JSON(http.StatusOK, det)
}

// EditVenue returns the stored venue record for an edit form.
func (h *DirectoryHandler) EditVenue(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return invalidID(c)
    }
    v, err := h.Directory.Venue(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, v)
}

// CreateVenue inserts a venue and responds 201 with its id.
func (h *DirectoryHandler) CreateVenue(c echo.Context) error {
    var in service.VenueInput
    if err := c.Bind(&in); err != nil {
        return bindError(c, err)
    }
    id, err := h.Mutations.CreateVenue(c.Request().Context(), in)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

// UpdateVenue overwrites the venue with the request body.
func (h *DirectoryHandler) UpdateVenue(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return invalidID(c)
    }
    var in service.VenueInput
    if err := c.Bind(&in); err != nil {
        return bindError(c, err)
    }
    if err := h.Mutations.UpdateVenue(c.Request().Context(), id, in); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// DeleteVenue removes the venue and its shows.
func (h *DirectoryHandler) DeleteVenue(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return invalidID(c)
    }
    if err := h.Mutations.DeleteVenue(c.Request().Context(), id); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
