package placeholder

import (
	"strconv"

	"github.com/mauv0809/playtime-placeholders/internal/playtime"
	"github.com/mauv0809/playtime-placeholders/internal/text"
)

// Token names available to the playtime-top message.
const (
	TokenPosition   = "position"
	TokenPlayerName = "playername"
	TokenPlaytime   = "playtime"
	TokenPlaytimeH  = "playtime_h"
	TokenPlaytimeM  = "playtime_m"
	TokenPlaytimeS  = "playtime_s"
)

// EntryTokens builds the tokens for one leaderboard row. Every value is plain
// text, so player names can never inject markup.
func EntryTokens(position int, name string, playtimeMillis int64, locale string, names playtime.UnitNames) text.Tokens {
	c := playtime.Decompose(playtimeMillis)
	return text.Tokens{
		TokenPosition:   text.Plain(strconv.Itoa(position)),
		TokenPlayerName: text.Plain(name),
		TokenPlaytime:   text.Plain(playtime.Format(names, locale, playtimeMillis/1000)),
		TokenPlaytimeH:  text.Plain(strconv.FormatInt(c.Hours, 10)),
		TokenPlaytimeM:  text.Plain(strconv.FormatInt(c.Minutes, 10)),
		TokenPlaytimeS:  text.Plain(strconv.FormatInt(c.Seconds, 10)),
	}
}
