package screens_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geobook/geobook/internal/screens"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name              string
		title, subtitle   string
		lat, lng          float64
		requireAnnotation bool
		wantMessage       string
	}{
		{"empty title", "", "x", 1, 1, false, "title cannot be empty"},
		{"empty subtitle", "x", "", 1, 1, false, "subtitle cannot be empty"},
		{"both empty reports title first", "", "", 1, 1, false, "title cannot be empty"},
		{"sentinel coordinate", "x", "y", 0, 0, true, "you have to annotate the map"},
		{"zero latitude only", "x", "y", 0, 45.6, true, "you have to annotate the map"},
		{"zero longitude only", "x", "y", 12.3, 0, true, "you have to annotate the map"},
		{"annotation message wins over empty subtitle", "x", "", 0, 0, true, "you have to annotate the map"},
		{"sentinel allowed without annotation check", "x", "y", 0, 0, false, ""},
		{"valid", "x", "y", 12.3, 45.6, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := screens.Validate(tc.title, tc.subtitle, tc.lat, tc.lng, tc.requireAnnotation)
			if tc.wantMessage == "" {
				assert.NoError(t, err)
				return
			}

			var vErr *screens.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.wantMessage, err.Error())
		})
	}
}
