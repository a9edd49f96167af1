package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	cases := map[string]string{
		"math":    "%math%",
		"100%":    `%100\%%`,
		"a_b":     `%a\_b%`,
		`C:\path`: `%C:\\path%`,
		`%_\`:     `%\%\_\\%`,
		"":        "%%",
	}
	for in, want := range cases {
		assert.Equal(t, want, ContainsPattern(in), in)
	}
}
