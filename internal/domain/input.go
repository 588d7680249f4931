package domain

import (
	"strconv"
	"strings"
)

// ParseLengthInput applies a raw length field value to the current length.
// A blank field means 0 and non-numeric input is ignored.
func ParseLengthInput(input string, current int) int {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		return current
	}
	return n
}
