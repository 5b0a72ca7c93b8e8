package scrobble

import (
	"strconv"
	"strings"
)

// CollageArgs is the tuple recovered from a free-text collage/top phrase
// such as "clean 4 alltime" or "3 1m artist".
type CollageArgs struct {
	Size   int // grid edge, 1..7
	Period TimePeriod
	Entry  EntryType
	Clean  bool // suppress text overlays on the rendered collage
}

// DefaultCollageArgs are the values used for any field the phrase never
// claims.
func DefaultCollageArgs() CollageArgs {
	return CollageArgs{Size: 3, Period: AllTime, Entry: EntryAlbum}
}

// ParseCollageArgs recovers (size, period, entry type, clean) from an
// unordered, abbreviation-tolerant phrase. The command word must already be
// stripped by the caller.
//
// The scan is greedy and first-match-wins: each token is tried against the
// unclaimed classifiers in a fixed order (entry type, then size, then
// period), each classifier claims at most once, and unrecognized tokens are
// silently ignored so garbage input degrades to the defaults. Ambiguous
// tokens like a bare "1" go to whichever unclaimed classifier reaches them
// first; changing that order changes observable behavior, so don't.
func ParseCollageArgs(phrase string) CollageArgs {
	splits := strings.SplitN(phrase, " ", 4)

	args := DefaultCollageArgs()

	var sizeFound, periodFound, entryFound bool

	for _, s := range splits {
		if s == "notext" || s == "nonames" || s == "clean" {
			args.Clean = true
		}
	}

	for _, split := range splits {
		if !entryFound {
			entryFound = true
			switch {
			case strings.HasPrefix(split, "artist"):
				args.Entry = EntryArtist
			case strings.HasPrefix(split, "album"):
				args.Entry = EntryAlbum
			case strings.HasPrefix(split, "track"):
				args.Entry = EntryTrack
			default:
				entryFound = false
			}

			if entryFound {
				continue
			}
		}

		fragment := truncate(split, 4)

		if !sizeFound {
			// "NxN" grid notation or a bare N.
			head, _, _ := strings.Cut(fragment, "x")
			if n, err := strconv.Atoi(head); err == nil && n > 0 && n <= 7 {
				args.Size = n
				sizeFound = true
				continue
			}
		}

		if !periodFound {
			isDay := strings.Contains(fragment, "d")
			isWeek := strings.Contains(fragment, "w")
			isMonth := strings.Contains(fragment, "m")
			isYear := strings.Contains(fragment, "y")
			isAll := strings.Contains(fragment, "o") || strings.Contains(fragment, "all")

			if firstDigit, err := strconv.Atoi(firstChar(split)); err == nil {
				if isDay && firstDigit == 7 || isWeek && firstDigit == 1 {
					args.Period = OneWeek
					periodFound = true
				}
				if isMonth && firstDigit == 1 || firstDigit == 3 || firstDigit == 6 {
					switch firstDigit {
					case 1:
						args.Period = OneMonth
					case 3:
						args.Period = ThreeMonths
					case 6:
						args.Period = SixMonths
					}
					periodFound = true
				}
				if isYear && firstDigit == 1 {
					args.Period = OneYear
					periodFound = true
				}
			} else if isWeek || isMonth || isYear || isAll {
				switch {
				case isWeek:
					args.Period = OneWeek
				case isMonth:
					args.Period = OneMonth
				case isYear:
					args.Period = OneYear
				default:
					args.Period = AllTime
				}
				periodFound = true
			}
		}
	}

	return args
}

// String renders the args as a phrase that parses back to the same tuple.
func (a CollageArgs) String() string {
	tokens := []string{a.Entry.String(), strconv.Itoa(a.Size), periodToken(a.Period)}
	if a.Clean {
		tokens = append(tokens, "clean")
	}
	return strings.Join(tokens, " ")
}

// periodToken is the canonical short form for each period.
func periodToken(tp TimePeriod) string {
	switch tp {
	case OneWeek:
		return "1w"
	case OneMonth:
		return "1m"
	case ThreeMonths:
		return "3m"
	case SixMonths:
		return "6m"
	case OneYear:
		return "1y"
	default:
		return "alltime"
	}
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// firstChar returns the first character of s, or "".
func firstChar(s string) string {
	if s == "" {
		return ""
	}
	return s[:1]
}
