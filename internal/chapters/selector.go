package chapters

import (
	"strconv"
	"strings"
)

// Filter picks chapters by name or number, by an inclusive "a-b" range, or by
// a comma separated list of numbers. With no selector every chapter is kept.
func Filter(all []Chapter, chapter, rng, list string) []Chapter {
	if chapter != "" {
		if byName := FilterByName(all, chapter); len(byName) > 0 {
			return byName
		}
		if idx, err := atoi(chapter); err == nil && idx > 0 && idx <= len(all) {
			return []Chapter{all[idx-1]}
		}

		return nil
	}
	if rng != "" {
		return FilterRange(all, rng)
	}
	if list != "" {
		return FilterList(all, list)
	}

	return all
}

func FilterByName(all []Chapter, name string) []Chapter {
	var out []Chapter
	for _, ch := range all {
		if ch.Name == name {
			out = append(out, ch)
		}
	}

	return out
}

// FilterRange returns chapters start..end inclusive; an end past the last
// chapter is clamped.
func FilterRange(all []Chapter, rng string) []Chapter {
	parts := strings.Split(rng, "-")
	if len(parts) != 2 {
		return nil
	}

	start, err1 := atoi(parts[0])
	end, err2 := atoi(parts[1])
	if err1 != nil || err2 != nil {
		return nil
	}
	end = min(end, len(all))
	if start <= 0 || start > end {
		return nil
	}

	return all[start-1 : end]
}

func FilterList(all []Chapter, list string) []Chapter {
	var out []Chapter
	for p := range strings.SplitSeq(list, ",") {
		idx, err := atoi(p)
		if err != nil || idx <= 0 || idx > len(all) {
			continue
		}

		out = append(out, all[idx-1])
	}

	return out
}

func atoi(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
