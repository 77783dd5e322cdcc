package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/booking-directory/internal/service"
)

// ListArtists returns every artist's id and name.
func (h *DirectoryHandler) ListArtists(c echo.Context) error {
    refs, err := h.Directory.ListArtists(c.Request().Context())
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"artists": refs})
}

func (h *DirectoryHandler) SearchArtists(c echo.Context) error {
    res, err := h.Directory.SearchArtists(c.Request().Context(), searchTerm(c))
    if err != nil {
        return respondError(c, err)
    }
    noStore(c)
    return c.JSON(http.StatusOK, res)
}

func (h *DirectoryHandler) GetArtist(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return invalidID(c)
    }
    det, err := h.Directory.ArtistDetail(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    noStore(c)
    return c.JSON(http.StatusOK, det)
}

func (h *DirectoryHandler) EditArtist(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return invalidID(c)
    }
    a, err := h.Directory.Artist(c.Request().Context(), id)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, a)
}

func (h *DirectoryHandler) CreateArtist(c echo.Context) error {
    var in service.ArtistInput
    if err := c.Bind(&in); err != nil {
        return bindError(c, err)
    }
    id, err := h.Mutations.CreateArtist(c.Request().Context(), in)
    if err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{"id": id})
}

func (h *DirectoryHandler) UpdateArtist(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return invalidID(c)
    }
    var in service.ArtistInput
    if err := c.Bind(&in); err != nil {
        return bindError(c, err)
    }
    if err := h.Mutations.UpdateArtist(c.Request().Context(), id, in); err != nil {
        return respondError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"id": id})
}

// DeleteArtist removes the artist and every show it plays.
func (h *DirectoryHandler) DeleteArtist(c echo.Context) error {
    id, ok := pathID(c)
    if !ok {
        return invalidID(c)
    }
    if err := h.Mutations.DeleteArtist(c.Request().Context(), id); err != nil {
        return respondError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}
