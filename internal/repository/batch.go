package repository

import (
	"strconv"
	"strings"
)

// placeholders renders rows groups of len(casts) positional parameters,
// "($1, $2), ($3, $4)". A non-empty cast is appended to its parameter so
// untyped VALUES lists still resolve to the column types.
func placeholders(rows int, casts []string) string {
	var b strings.Builder
	n := 1
	for row := 0; row < rows; row++ {
		if row > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for col, cast := range casts {
			if col > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			if cast != "" {
				b.WriteString("::")
				b.WriteString(cast)
			}
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}

func untyped(n int) []string {
	return make([]string, n)
}
