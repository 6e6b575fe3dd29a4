package nhl

import (
	"fmt"
	"time"
)

// CurrentSeason returns the NHL season identifier containing now, encoded
// as the two calendar years concatenated (e.g. "20232024"). Seasons run
// October through June, so before October the season started the previous
// year.
func CurrentSeason(now time.Time) string {
	year := now.Year()
	if now.Month() < time.October {
		year--
	}
	return fmt.Sprintf("%d%d", year, year+1)
}

// seasonStartDate returns the schedule anchor date for a season: October 1
// of the season's first year.
func seasonStartDate(season string) string {
	if len(season) < 4 {
		return season + "-10-01"
	}
	return season[:4] + "-10-01"
}
