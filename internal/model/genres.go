package model

import (
    "database/sql/driver"
    "fmt"
    "strings"
)

// GenreDelimiter joins genre tags in the single `genres` column.
const GenreDelimiter = ", "

// Genres is an ordered list of genre tags.  It is persisted as one
// delimiter-joined string and split back into the same sequence when
// scanned, so a tag must never contain a comma.
type Genres []string

// Validate reports the first tag that cannot round-trip through the
// joined column form.
func (g Genres) Validate() error {
    for i, tag := range g {
        if strings.TrimSpace(tag) == "" {
            return fmt.Errorf("genre %d is empty", i)
        }
        if strings.Contains(tag, ",") {
            return fmt.Errorf("genre %q contains a comma", tag)
        }
    }
    return nil
}

// String returns the joined column form.
func (g Genres) String() string {
    return strings.Join(g, GenreDelimiter)
}

// ParseGenres splits the joined column form.  An empty string yields an
// empty, non-nil list.
func ParseGenres(s string) Genres {
    if s == "" {
        return Genres{}
    }
    return Genres(strings.Split(s, GenreDelimiter))
}

// Value implements driver.Valuer.
func (g Genres) Value() (driver.Value, error) {
    return g.String(), nil
}

// Scan implements sql.Scanner.
func (g *Genres) Scan(src any) error {
    switch v := src.(type) {
    case nil:
        *g = Genres{}
    case string:
        *g = ParseGenres(v)
    case []byte:
        *g = ParseGenres(string(v))
    default:
        return fmt.Errorf("genres: cannot scan %T", src)
    }
    return nil
}
