package normalize

import (
	"regexp"
	"strconv"
)

var (
	reFourFour = regexp.MustCompile(`^\s*(\d{4})[-/](\d{4})\s*$`)
	reFourTwo  = regexp.MustCompile(`^\s*(\d{4})[-/](\d{2})\s*$`)
	reTwoTwo   = regexp.MustCompile(`^\s*(\d{2})[-/](\d{2})\s*$`)
	reFour     = regexp.MustCompile(`^\s*(\d{4})\s*$`)
)

// Season is the (start_year, end_year) pair produced by normalizing a
// season string; either field may be absent (nil) when parsing fails.
type Season struct {
	StartYear *int
	EndYear   *int
}

func yr(v int) *int { return &v }

// ParseSeason implements the season string grammar from §4.1, following the
// "inclusive" variant for bare 2-digit pairs: a YY[-/]YY string is always
// parsed, each side independently expanded via expandTwoDigitYear.
func ParseSeason(input string) Season {
	if m := reFourFour.FindStringSubmatch(input); m != nil {
		start, _ := strconv.Atoi(m[1])
		end, _ := strconv.Atoi(m[2])
		return Season{StartYear: yr(start), EndYear: yr(end)}
	}

	if m := reFourTwo.FindStringSubmatch(input); m != nil {
		start, _ := strconv.Atoi(m[1])
		yy, _ := strconv.Atoi(m[2])
		century := (start / 100) * 100
		end := century + yy
		if end < start {
			end = start + 1
		}
		return Season{StartYear: yr(start), EndYear: yr(end)}
	}

	if m := reTwoTwo.FindStringSubmatch(input); m != nil {
		startYY, _ := strconv.Atoi(m[1])
		endYY, _ := strconv.Atoi(m[2])
		start := expandTwoDigitYear(startYY)
		end := expandTwoDigitYear(endYY)
		if end < start {
			end = start + 1
		}
		return Season{StartYear: yr(start), EndYear: yr(end)}
	}

	if m := reFour.FindStringSubmatch(input); m != nil {
		start, _ := strconv.Atoi(m[1])
		return Season{StartYear: yr(start), EndYear: yr(start + 1)}
	}

	return Season{}
}

// expandTwoDigitYear implements the "inclusive" historical variant required
// by the §8 round-trip test: YY <= 30 expands into the 2000s, otherwise the
// 1900s.
func expandTwoDigitYear(yy int) int {
	if yy <= 30 {
		return 2000 + yy
	}
	return 1900 + yy
}
