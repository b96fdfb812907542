package domain

import (
	"strings"
	"unicode/utf8"
)

const (
	minWishLen = 2
	maxWishLen = 200
	minNumber  = 1
	maxNumber  = 99
)

// NormalizeWish trims the wish and checks its length in characters.
func NormalizeWish(wish string) (string, error) {
	wish = strings.TrimSpace(wish)
	n := utf8.RuneCountInString(wish)
	if n < minWishLen || n > maxWishLen {
		return "", ErrInvalidWish
	}
	return wish, nil
}

// ParseNumbers checks that exactly three numbers in 1..99 were given.
func ParseNumbers(numbers []int) ([3]int, error) {
	var out [3]int
	if len(numbers) != len(out) {
		return out, ErrInvalidNumbers
	}
	for i, n := range numbers {
		if n < minNumber || n > maxNumber {
			return [3]int{}, ErrInvalidNumbers
		}
		out[i] = n
	}
	return out, nil
}
