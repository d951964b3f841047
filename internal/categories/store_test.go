package categories

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/smart-budget/internal/common"
	"github.com/Veraticus/smart-budget/internal/model"
)

func TestDefaults(t *testing.T) {
	s := Defaults()

	assert.Equal(t, []string{
		"Housing", "Food", "Transportation", "Utilities",
		"Entertainment", "Healthcare", "Savings", "Other",
	}, s.Names())
	assert.Empty(t, s.CustomNames())

	food, ok := s.Get("Food")
	require.True(t, ok)
	assert.Equal(t, "food", food.ID)
	assert.Equal(t, "🍽️", food.Icon)
	assert.Equal(t, "bg-gradient-to-r from-green-500 to-emerald-600", food.Gradient)
	assert.Zero(t, food.Allocated)
	assert.False(t, food.IsCustom)

	for _, c := range s.All() {
		assert.True(t, IsBuiltin(c.Name), c.Name)
	}
}

func TestAddCustom(t *testing.T) {
	base := Defaults()

	s, c, ok := base.AddCustom("  Pets  ")
	require.True(t, ok)
	assert.Equal(t, "Pets", c.Name)
	assert.Equal(t, "🐕", c.Icon)
	assert.Equal(t, "from-teal-500 to-green-600", c.Color)
	assert.Equal(t, "bg-gradient-to-r from-teal-500 to-green-600", c.Gradient)
	assert.True(t, c.IsCustom)
	assert.Zero(t, c.Allocated)

	assert.Equal(t, []string{"Pets"}, s.CustomNames())
	assert.Equal(t, 9, s.Len())
	assert.Equal(t, 8, base.Len(), "receiver must not change")

	s, _, _ = s.AddCustom("Kids")
	assert.Equal(t, []string{"Pets", "Kids"}, s.CustomNames())
	assert.Equal(t, "Kids", s.Names()[9])
}

func TestAddCustomBlankIsIgnored(t *testing.T) {
	base := Defaults()
	for _, name := range []string{"", "   ", "\t"} {
		s, _, ok := base.AddCustom(name)
		assert.False(t, ok)
		assert.Equal(t, base.Names(), s.Names())
	}
}

func TestAddCustomOverwrites(t *testing.T) {
	s, _, _ := Defaults().AddCustom("Pets")
	s, err := s.SetAllocation("Pets", 50)
	require.NoError(t, err)

	s, _, ok := s.AddCustom("Pets")
	require.True(t, ok)

	pets, _ := s.Get("Pets")
	assert.Zero(t, pets.Allocated, "re-adding resets the entry")
	assert.Equal(t, []string{"Pets"}, s.CustomNames())
}

func TestAddCustomOverBuiltin(t *testing.T) {
	s, c, ok := Defaults().AddCustom("Food")
	require.True(t, ok)
	assert.True(t, c.IsCustom)
	assert.Equal(t, 8, s.Len())
	assert.Equal(t, "Food", s.Names()[1], "position is kept")
}

func TestSetAllocation(t *testing.T) {
	base := Defaults()

	s, err := base.SetAllocation("Housing", 1200)
	require.NoError(t, err)
	housing, _ := s.Get("Housing")
	assert.InEpsilon(t, 1200.0, housing.Allocated, 1e-9)

	old, _ := base.Get("Housing")
	assert.Zero(t, old.Allocated)

	_, err = base.SetAllocation("Nope", 10)
	assert.ErrorIs(t, err, common.ErrUnknownCategory)
}

func TestLookupUnknown(t *testing.T) {
	s := Defaults()

	c := s.Lookup("Vanished")
	assert.Equal(t, "Vanished", c.Name)
	assert.Equal(t, UnknownIcon, c.Icon)
	assert.NotEmpty(t, c.Gradient)

	assert.Equal(t, "🏠", s.Lookup("Housing").Icon)
}

func TestZeroStoreAddCustom(t *testing.T) {
	var s Store
	s, _, ok := s.AddCustom("Gym")
	require.True(t, ok)
	assert.Equal(t, []string{"Gym"}, s.Names())
}

func TestStoreJSON(t *testing.T) {
	s, _, _ := Defaults().AddCustom("Pets")
	s, err := s.SetAllocation("Pets", 75.5)
	require.NoError(t, err)
	s, err = s.SetAllocation("Food", 400)
	require.NoError(t, err)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var restored Store
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, s.Names(), restored.Names())
	assert.Equal(t, s.All(), restored.All())
}

func TestStoreJSONRestoresMissingBuiltins(t *testing.T) {
	data := []byte(`[{"name":"Pets","icon":"🐕","color":"from-teal-500 to-green-600","allocated":20,"isCustom":true}]`)

	var s Store
	require.NoError(t, json.Unmarshal(data, &s))

	assert.Len(t, s.Names(), 9)
	pets, ok := s.Get("Pets")
	require.True(t, ok)
	assert.Equal(t, "bg-gradient-to-r from-teal-500 to-green-600", pets.Gradient)

	_, ok = s.Get(model.DefaultCategory)
	assert.True(t, ok)
}

func TestStoreJSONRejectsGarbage(t *testing.T) {
	var s Store
	assert.Error(t, json.Unmarshal([]byte(`{"not":"a list"}`), &s))
}
