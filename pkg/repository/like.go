package repository

import "strings"

// likeEscaper neutralizes LIKE metacharacters so a search for "50% off"
// matches the literal text instead of acting as a wildcard.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + strings.ToLower(likeEscaper.Replace(s)) + "%"
}
