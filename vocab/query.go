package vocab

import (
	"net/url"
	"strings"
)

const (
	repositoryParam    = "repository"
	labelParam         = "label"
	propertyParam      = "property1"
	propertyValueParam = "property_value1"
)

// CommodityScheme identifies the repository and scheme filter used to list commodities.
type CommodityScheme struct {
	Repository string
	Property   string
	Value      string
}

// DefaultCommodityScheme selects the GA commodity classification scheme.
var DefaultCommodityScheme = CommodityScheme{
	Repository: "commodity_vocab",
	Property:   "skos:inScheme",
	Value:      "<urn:cgi:classifierScheme:GA:commodity>",
}

// Param is a single query string name/value pair.
type Param struct {
	Name  string
	Value string
}

// Query is an ordered set of query parameters sent to the vocabulary service.
// A Query is never modified after construction, so it may be shared between goroutines.
type Query struct {
	params []Param
}

// NewQuery builds a Query from the given parameters, keeping their order.
func NewQuery(params ...Param) Query {
	p := make([]Param, len(params))
	copy(p, params)
	return Query{params: p}
}

// ScalarQuery selects the concepts of repository matching label.
func ScalarQuery(repository, label string) Query {
	return NewQuery(
		Param{Name: repositoryParam, Value: repository},
		Param{Name: labelParam, Value: label},
	)
}

// CommodityQuery selects all concepts of the given commodity scheme.
func CommodityQuery(scheme CommodityScheme) Query {
	return NewQuery(
		Param{Name: repositoryParam, Value: scheme.Repository},
		Param{Name: propertyParam, Value: scheme.Property},
		Param{Name: propertyValueParam, Value: scheme.Value},
	)
}

// Params returns a copy of the query parameters.
func (q Query) Params() []Param {
	p := make([]Param, len(q.params))
	copy(p, q.params)
	return p
}

// Values returns the parameters as url.Values.
func (q Query) Values() url.Values {
	v := url.Values{}
	for _, p := range q.params {
		v.Add(p.Name, p.Value)
	}
	return v
}

// Encode returns the URL encoded query string.
// Unlike url.Values.Encode the parameters are kept in insertion order.
func (q Query) Encode() string {
	var sb strings.Builder
	for i, p := range q.params {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.Name))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(p.Value))
	}
	return sb.String()
}
