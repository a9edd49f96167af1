package helper

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern turns user input into an ILIKE substring pattern.
// Wildcards in the input match literally (Postgres escapes with backslash by default).
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
