package vocab

import (
	"encoding/xml"
	"strings"
)

// Concept models one vocabulary term returned by the vocabulary service
type Concept struct {
	URN       string `json:"urn"`
	PrefLabel string `json:"label"`
}

// ScalarQueryResult is the envelope returned to clients for a single concept lookup.
// When Success is false Label and ScopeNote are always empty, Data may still hold the raw body.
type ScalarQueryResult struct {
	Success   bool   `json:"success"`
	Data      string `json:"data"`
	ScopeNote string `json:"scopeNote"`
	Label     string `json:"label"`
}

// rdfDocument maps the /RDF/Concept paths of a vocabulary service response.
// Elements are matched by local name so namespaced (rdf:, skos:) and bare documents decode alike.
type rdfDocument struct {
	XMLName  xml.Name
	Concepts []rdfConcept `xml:"Concept"`
}

type rdfConcept struct {
	URN         string      `xml:"urn,attr"`
	About       string      `xml:"about,attr"`
	Identifiers []textValue `xml:"identifier"`
	PrefLabels  []textValue `xml:"prefLabel"`
	ScopeNotes  []textValue `xml:"scopeNote"`
}

// textValue holds the text content of an element, including the text of any nested elements.
type textValue struct {
	Text string
}

func (v *textValue) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	for depth := 1; depth > 0; {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			sb.Write(t)
		}
	}
	v.Text = sb.String()
	return nil
}

func (c rdfConcept) urn() string {
	switch {
	case c.URN != "":
		return c.URN
	case c.About != "":
		return c.About
	default:
		return firstText(c.Identifiers)
	}
}

func firstText(values []textValue) string {
	if len(values) == 0 {
		return ""
	}
	return values[0].Text
}
