package placeholder

import (
	"context"
	"strconv"

	"github.com/mauv0809/playtime-placeholders/internal/players"
	"github.com/mauv0809/playtime-placeholders/internal/playtime"
)

// PlayerHook resolves identifiers describing the requesting player itself.
// It is registered as the default hook by the service.
type PlayerHook struct {
	Names playtime.UnitNames
}

var _ Hook = PlayerHook{}

func (h PlayerHook) Resolve(ctx context.Context, player *players.Player, identifier string) (string, bool) {
	c := playtime.Decompose(player.PlaytimeMillis)
	switch identifier {
	case "name":
		return player.Name, true
	case "uuid":
		return player.ID.String(), true
	case "language":
		return player.Language, true
	case "playtime":
		return playtime.Format(h.Names, player.Language, player.PlaytimeMillis/1000), true
	case "playtime_h":
		return strconv.FormatInt(c.Hours, 10), true
	case "playtime_m":
		return strconv.FormatInt(c.Minutes, 10), true
	case "playtime_s":
		return strconv.FormatInt(c.Seconds, 10), true
	}
	return "", false
}
