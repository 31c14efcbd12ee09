package vocab

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarQuery(t *testing.T) {
	q := ScalarQuery("3DMM", "gold ore")

	assert.Equal(t, []Param{{Name: "repository", Value: "3DMM"}, {Name: "label", Value: "gold ore"}}, q.Params())
	assert.Equal(t, "repository=3DMM&label=gold+ore", q.Encode())
}

func TestCommodityQuery(t *testing.T) {
	q := CommodityQuery(DefaultCommodityScheme)

	assert.Equal(t, "repository=commodity_vocab&property1=skos%3AinScheme&property_value1=%3Curn%3Acgi%3AclassifierScheme%3AGA%3Acommodity%3E", q.Encode())

	values, err := url.ParseQuery(q.Encode())
	assert.NoError(t, err)
	assert.Equal(t, q.Values(), values)
	assert.Equal(t, "<urn:cgi:classifierScheme:GA:commodity>", values.Get("property_value1"))
}

func TestQueryIsImmutable(t *testing.T) {
	params := []Param{{Name: "repository", Value: "a"}}
	q := NewQuery(params...)
	params[0].Value = "b"

	returned := q.Params()
	returned[0].Value = "c"

	assert.Equal(t, "repository=a", q.Encode())
}

func TestEmptyQuery(t *testing.T) {
	q := NewQuery()
	assert.Equal(t, "", q.Encode())
	assert.Empty(t, q.Values())
}
