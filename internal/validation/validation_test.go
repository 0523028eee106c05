package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type byEntities struct {
	EntityIDs []int64 `json:"entity_ids" validate:"required"`
}

type box struct {
	XMin float64 `json:"bbox_x_min" validate:"gte=0,lte=1"`
	XMax float64 `json:"bbox_x_max" validate:"gte=0,lte=1,gtfield=XMin"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Default().Struct(&byEntities{})

	var verr *Error
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "entity_ids", verr.Fields[0].Field)
	assert.Equal(t, "field required", verr.Fields[0].Message)
}

func TestStructAcceptsEmptyButPresentSlice(t *testing.T) {
	assert.NoError(t, Default().Struct(&byEntities{EntityIDs: []int64{}}))
}

func TestBoundingBoxRules(t *testing.T) {
	tests := []struct {
		name  string
		box   box
		valid bool
	}{
		{"inside unit square", box{XMin: 0.1, XMax: 0.9}, true},
		{"negative", box{XMin: -0.1, XMax: 0.5}, false},
		{"above one", box{XMin: 0.1, XMax: 1.5}, false},
		{"inverted", box{XMin: 0.6, XMax: 0.5}, false},
		{"degenerate", box{XMin: 0.5, XMax: 0.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New().Validate(&tt.box)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
