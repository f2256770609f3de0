package mapper_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"winestore/internal/mapper"
)

func TestMissing(t *testing.T) {
	name := "Cono Sur"
	var year *int

	missing := mapper.Missing(
		mapper.Required("name", &name),
		mapper.Required("year", year),
		mapper.Required[float64]("price", nil),
	)

	assert.Equal(t, []string{"year", "price"}, missing)
}

func TestMissing_AllPresent(t *testing.T) {
	assert.Empty(t, mapper.Missing(mapper.Required("id", mapper.Ptr(1))))
}

func TestMissingMessage(t *testing.T) {
	msg := mapper.MissingMessage([]string{"name", "idWinery"})
	assert.Contains(t, msg, "name, idWinery")
}

func TestMap_NeverNil(t *testing.T) {
	out := mapper.Map([]int(nil), strconv.Itoa)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	assert.Equal(t, []string{"1", "2"}, mapper.Map([]int{1, 2}, strconv.Itoa))
}

func TestPtrAndValue(t *testing.T) {
	p := mapper.Ptr(12.5)
	assert.Equal(t, 12.5, *p)
	assert.Equal(t, 12.5, mapper.Value(p))
	assert.Equal(t, "", mapper.Value[string](nil))
}
