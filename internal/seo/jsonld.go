package seo

import (
	"encoding/json"
	"html/template"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Script marshals v for a <script type="application/ld+json"> block.
// json.Marshal escapes <, > and & so the payload cannot close the script element.
func Script(v any) template.JS {
	return template.JS(JSON(v))
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url, description string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if description != "" {
		m["description"] = description
	}
	return m
}

// Person returns a minimal Person schema.
func Person(name, url string) map[string]any {
	m := map[string]any{
		"@type": "Person",
		"name":  name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

// CreativeWork returns a schema for a project with its authors.
func CreativeWork(name, url string, authors []map[string]any) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "CreativeWork",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if len(authors) > 0 {
		m["author"] = authors
	}
	return m
}
