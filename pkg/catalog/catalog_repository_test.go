package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"flour":      "flour",
		"100%":       `100\%`,
		"a_b":        `a\_b`,
		`back\slash`: `back\\slash`,
		"%_%":        `\%\_\%`,
	}

	for input, want := range cases {
		assert.Equal(t, want, escapeLike(input), input)
	}
}
