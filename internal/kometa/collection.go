package kometa

import (
	"fmt"
	"strings"

	"nssk/internal/premiere"
	"nssk/internal/schedule"
)

const (
	defaultCollectionName = "New Season Soon"
	defaultSortTitle      = "+1_2New Season Soon"
)

// CollectionConfig holds the collection entry settings.
type CollectionConfig struct {
	Name       string
	SortTitle  string
	FutureDays int
}

// RenderCollection builds the collection document. When shows exist but none
// has a TVDB id the document is suppressed, unlike the overlay.
func RenderCollection(shows []premiere.Show, cfg CollectionConfig) Document {
	if len(shows) == 0 {
		return Sentinel()
	}
	ids := schedule.GlobalIDs(shows)
	if len(ids) == 0 {
		return Suppressed()
	}

	name := strings.TrimSpace(cfg.Name)
	if name == "" {
		name = defaultCollectionName
	}
	sortTitle := cfg.SortTitle
	if sortTitle == "" {
		sortTitle = defaultSortTitle
	}

	entry := NewMap().
		Set("collection_order", Str("custom")).
		Set("summary", Str(fmt.Sprintf("A new season will air within %d days", cfg.FutureDays))).
		Set("sort_title", Quoted(sortTitle)).
		Set("tvdb_show", Str(schedule.JoinIDs(ids)))

	return MappingDocument(NewMap().Set("collections", NewMap().Set(name, entry)))
}
