// Package handler exposes the directory over HTTP.  Handlers parse the
// request, call the service layer and map its error kinds to status
// codes; they hold no business rules of their own.
package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
    "github.com/sirupsen/logrus"

    "github.com/iliyamo/booking-directory/internal/repository"
    "github.com/iliyamo/booking-directory/internal/service"
)

// DirectoryHandler bundles the read and write services.
type DirectoryHandler struct {
    Directory *service.Directory
    Mutations *service.Mutations
}

// NewDirectoryHandler constructs a DirectoryHandler and panics if any
// dependency is nil.
func NewDirectoryHandler(dir *service.Directory, mut *service.Mutations) *DirectoryHandler {
    if dir == nil || mut == nil {
        panic("nil service passed to NewDirectoryHandler")
    }
    return &DirectoryHandler{Directory: dir, Mutations: mut}
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, bool) {
    id, err := strconv.ParseInt(c.Param("id"), 10, 64)
    if err != nil || id <= 0 {
        return 0, false
    }
    return id, true
}

// noStore keeps the response out of the read cache.  Show counts and the
// past/upcoming split are computed against the current time, so a stored
// copy goes stale as soon as a show starts.
func noStore(c echo.Context) {
    c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
}

func invalidID(c echo.Context) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
}

// respondError writes the status matching err's kind.  Validation is
// checked before not-found because a show referencing a missing artist
// carries both.
func respondError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrValidation):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation_failed", "message": err.Error()})
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": err.Error()})
    case errors.Is(err, repository.ErrIntegrity):
        logrus.WithError(err).WithField("path", c.Path()).Error("integrity violation")
        return c.JSON(http.StatusConflict, echo.Map{"error": "integrity_violation"})
    default:
        logrus.WithError(err).WithField("path", c.Path()).Error("request failed")
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database_error"})
    }
}

// searchTerm accepts ?q= and the form field search_term.
func searchTerm(c echo.Context) string {
    if q := c.QueryParam("q"); q != "" {
        return q
    }
    return c.FormValue("search_term")
}

func bindError(c echo.Context, err error) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid_body", "message": err.Error()})
}
