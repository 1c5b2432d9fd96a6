package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeImageURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"drive file link",
			"https://drive.google.com/file/d/1AbC_dEf-123/view?usp=sharing",
			"https://drive.google.com/uc?export=view&id=1AbC_dEf-123",
		},
		{
			"drive open link",
			"https://drive.google.com/open?id=1AbC_dEf-123",
			"https://drive.google.com/uc?export=view&id=1AbC_dEf-123",
		},
		{
			"plain url untouched",
			"https://cdn.example.com/covers/math-5.jpg",
			"https://cdn.example.com/covers/math-5.jpg",
		},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizeImageURL(tc.in))
		})
	}
}
