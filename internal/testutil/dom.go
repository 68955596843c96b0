package testutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

// ParseHTML parses the provided HTML payload into a goquery document for assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

// Attr returns the attribute value of the first match, failing the test when absent.
func Attr(t testing.TB, sel *goquery.Selection, name string) string {
	t.Helper()

	v, ok := sel.First().Attr(name)
	if !ok {
		t.Fatalf("attribute %q not found on %d matches", name, sel.Length())
	}
	return v
}
