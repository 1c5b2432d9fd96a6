package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		expect string
	}{
		{"Plain text lowercased", "Math Book", "%math book%"},
		{"Percent escaped", "50% off", `%50\% off%`},
		{"Underscore escaped", "Class_5", `%class\_5%`},
		{"Backslash escaped", `C:\books`, `%c:\\books%`},
		{"Empty", "", "%%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expect, likePattern(tc.in))
		})
	}
}
