package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marketplace/internal/domain/model"
)

func TestCategories_TwelveFixedSlots(t *testing.T) {
	assert.Len(t, model.Categories, 12)

	//並び順がそのまま添字になる
	assert.Equal(t, 0, model.CategoryIndex(model.CategoryElectronics))
	assert.Equal(t, 11, model.CategoryIndex(model.CategoryFood))
	assert.Equal(t, -1, model.CategoryIndex(model.Category("UNKNOWN")))
}

func TestDecodeCategories_Bitstring(t *testing.T) {
	set := model.DecodeCategories("100000000001")

	assert.Len(t, set, 2)
	assert.True(t, set.Has(model.CategoryElectronics))
	assert.True(t, set.Has(model.CategoryFood))
	assert.False(t, set.Has(model.CategoryBooks))
}

func TestDecodeCategories_CommaSeparatedLegacyForm(t *testing.T) {
	set := model.DecodeCategories("0,1,0,0,0,0,0,0,0,0,0,1")

	assert.Len(t, set, 2)
	assert.True(t, set.Has(model.CategoryClothing))
	assert.True(t, set.Has(model.CategoryFood))
}

func TestDecodeCategories_Empty(t *testing.T) {
	assert.Empty(t, model.DecodeCategories(""))
}

func TestEncodeCategories_RoundTrip(t *testing.T) {
	encoded := "010100000010"
	assert.Equal(t, encoded, model.EncodeCategories(model.DecodeCategories(encoded)))
}

func TestEncodeCategories_EmptySetIsAllZero(t *testing.T) {
	assert.Equal(t, "000000000000", model.EncodeCategories(model.CategorySet{}))
	assert.Equal(t, "000000000000", model.EncodedCategoriesZero())
}

func TestIsZeroEncodedCategories(t *testing.T) {
	assert.True(t, model.IsZeroEncodedCategories(""))
	assert.True(t, model.IsZeroEncodedCategories("000000000000"))
	assert.True(t, model.IsZeroEncodedCategories("0,0,0,0,0,0,0,0,0,0,0,0"))
	assert.False(t, model.IsZeroEncodedCategories("000000000001"))
}
