package vocab

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

const rdfRootElement = "RDF"

// ExtractConcepts returns one Concept per /RDF/Concept node of body, in document order.
// A well-formed document without concept nodes yields an empty slice.
// A body that is not well-formed XML yields a *ParseError and no concepts.
func ExtractConcepts(body string) ([]Concept, error) {
	doc, err := decodeRDF(body)
	if err != nil {
		return nil, err
	}

	concepts := make([]Concept, 0, len(doc.Concepts))
	for _, c := range doc.Concepts {
		concepts = append(concepts, Concept{
			URN:       c.urn(),
			PrefLabel: firstText(c.PrefLabels),
		})
	}
	return concepts, nil
}

// ExtractScalarFields returns the text of the first /RDF/Concept/prefLabel
// and the first /RDF/Concept/scopeNote nodes of body.
// Missing nodes yield empty strings, a body that is not well-formed XML yields a *ParseError.
func ExtractScalarFields(body string) (label string, scopeNote string, err error) {
	doc, err := decodeRDF(body)
	if err != nil {
		return "", "", err
	}

	foundLabel, foundScopeNote := false, false
	for _, c := range doc.Concepts {
		if !foundLabel && len(c.PrefLabels) > 0 {
			label, foundLabel = firstText(c.PrefLabels), true
		}
		if !foundScopeNote && len(c.ScopeNotes) > 0 {
			scopeNote, foundScopeNote = firstText(c.ScopeNotes), true
		}
		if foundLabel && foundScopeNote {
			break
		}
	}
	return label, scopeNote, nil
}

func decodeRDF(body string) (rdfDocument, error) {
	var doc rdfDocument
	d := xml.NewDecoder(strings.NewReader(body))
	d.CharsetReader = charset.NewReaderLabel
	if err := d.Decode(&doc); err != nil {
		return rdfDocument{}, &ParseError{Err: err}
	}
	if err := checkEndOfDocument(d); err != nil {
		return rdfDocument{}, &ParseError{Err: err}
	}

	if doc.XMLName.Local != rdfRootElement {
		return rdfDocument{}, nil
	}
	return doc, nil
}

// checkEndOfDocument consumes what follows the root element.
// Only whitespace, comments and processing instructions are allowed there.
func checkEndOfDocument(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return fmt.Errorf("unexpected text %q after root element", string(t))
			}
		case xml.Comment, xml.ProcInst:
		default:
			return fmt.Errorf("unexpected %T after root element", t)
		}
	}
}
