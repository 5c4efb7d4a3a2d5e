package main

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/seqsense/dragview/model"
)

var controlIDs = []string{"scale", "position-x", "position-y", "position-z"}

// applyControl writes a range input value into the node.
// Values are not validated; unparsable input is stored as NaN.
func applyControl(n *model.Node, id, value string) bool {
	v := float32(parseFloatPrefix(value))
	switch id {
	case "scale":
		n.SetScale(v)
	case "position-x":
		n.Position[0] = v
	case "position-y":
		n.Position[1] = v
	case "position-z":
		n.Position[2] = v
	default:
		return false
	}
	return true
}

// parseFloatPrefix parses the longest decimal prefix of s after leading
// white space, the same way as JavaScript parseFloat.
func parseFloatPrefix(s string) float64 {
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\ufeff'
	})

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if strings.HasPrefix(s[i:], "Infinity") {
		if s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	}

	var digits int
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return math.NaN()
	}

	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			end = k
		}
	}

	// Out of range values are returned as +-Inf with ErrRange.
	f, _ := strconv.ParseFloat(s[:end], 64)
	return f
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
