package extract

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoNumber is returned when a phrase contains no spelled-out number.
var ErrNoNumber = errors.New("no spelled-out number in phrase")

var wordRe = regexp.MustCompile(`[a-z]+`)

var unitWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var scaleWords = map[string]int{
	"hundred":  100,
	"thousand": 1000,
}

// ParseNumberWords parses a spelled-out cardinal ("five hundred", "twenty-two")
// out of a phrase. Words before the number are skipped; the first word after
// it ends the parse. Returns ErrNoNumber if nothing numeric is found.
func ParseNumberWords(phrase string) (int, error) {
	tokens := wordRe.FindAllString(strings.ToLower(phrase), -1)
	total, current := 0, 0
	matched := false
	for _, tok := range tokens {
		if tok == "and" && matched {
			continue
		}
		if v, ok := unitWords[tok]; ok {
			current += v
			matched = true
			continue
		}
		if s, ok := scaleWords[tok]; ok {
			if current == 0 {
				current = 1
			}
			if s >= 1000 {
				total += current * s
				current = 0
			} else {
				current *= s
			}
			matched = true
			continue
		}
		if matched {
			break
		}
	}
	if !matched {
		return 0, ErrNoNumber
	}
	return total + current, nil
}
