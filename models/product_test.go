package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mugix-storefront/utils"
)

func TestProductInput_NormalizeBlankCategory(t *testing.T) {
	for _, raw := range []string{"", "  "} {
		in := ProductInput{Name: "Mug", CategoryID: &raw}

		in.Normalize()

		assert.Nil(t, in.CategoryID, "%q", raw)
		assert.NoError(t, utils.Validate.Struct(in))
	}
}

func TestProductInput_NormalizeKeepsRealCategory(t *testing.T) {
	id := "6f1c2f8e-2d4b-4c1a-9a5e-0d7b3c9e1f20"
	in := ProductInput{Name: "Mug", CategoryID: &id}

	in.Normalize()

	require.NotNil(t, in.CategoryID)
	assert.Equal(t, id, *in.CategoryID)
}
