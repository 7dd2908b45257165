package kometa

import (
	"fmt"

	"nssk/internal/premiere"
	"nssk/internal/schedule"
)

const (
	defaultUseText  = "New Season"
	backdropBlock   = "backdrop"
	dateBlockPrefix = "NSSK_"
	keyDateFormat   = "date_format"
	keyUseText      = "use_text"
)

// OverlayConfig carries the user's overlay fragments. Backdrop is applied to
// the single backdrop block; Text is applied to every per-date text block and
// may also set date_format and use_text, which shape the block name and are
// not passed through. BackdropKeys and TextKeys, when set, give the key order
// of each fragment.
type OverlayConfig struct {
	Backdrop     map[string]any
	Text         map[string]any
	BackdropKeys []string
	TextKeys     []string
}

// RenderOverlay builds the overlay document: a backdrop block covering every
// matched show followed by one text block per air date.
func RenderOverlay(shows []premiere.Show, cfg OverlayConfig) Document {
	if len(shows) == 0 {
		return Sentinel()
	}

	overlays := NewMap()
	overlays.Set(backdropBlock, NewMap().
		Set("overlay", fragment(cfg.Backdrop, cfg.BackdropKeys, backdropBlock)).
		Set("tvdb_show", Str(schedule.JoinIDs(schedule.GlobalIDs(shows)))))

	scheme := textSetting(cfg.Text, keyDateFormat, schedule.DefaultScheme)
	useText := textSetting(cfg.Text, keyUseText, defaultUseText)
	for _, group := range schedule.Group(shows) {
		label := schedule.FormatLabel(group.Date, scheme)
		name := fmt.Sprintf("text(%s %s)", useText, label)
		overlays.Set(dateBlockPrefix+label, NewMap().
			Set("overlay", fragment(cfg.Text, cfg.TextKeys, name, keyDateFormat, keyUseText)).
			Set("tvdb_show", Str(schedule.JoinIDs(group.IDs))))
	}

	return MappingDocument(NewMap().Set("overlays", overlays))
}

func textSetting(text map[string]any, key, fallback string) string {
	value, ok := text[key]
	if !ok || value == nil {
		return fallback
	}
	return fmt.Sprint(value)
}
