package links

import (
	"net/url"
	"path"
	"strings"
)

// Kind values tell templates how a button should behave.
const (
	KindLink   = "link"   // same-site navigation
	KindAnchor = "anchor" // leaves the site
)

const (
	newTabTarget = "_blank"
	newTabRel    = "noopener noreferrer"
)

// Link is a hand-authored navigation entry.
type Link struct {
	Label  string `yaml:"label"`
	Href   string `yaml:"href"`
	NewTab bool   `yaml:"new_tab"`
}

// Rendered is a view model for templates.
type Rendered struct {
	Label    string
	Href     string
	NewTab   bool
	External bool
	Kind     string
	Target   string
	Rel      string
}

// Credit pairs an author link with the text that follows it in a sentence.
type Credit struct {
	Link      Rendered
	Separator string
}

// Resolve normalises the link target and derives its rendering attributes.
// Site-relative targets become root-absolute so they resolve the same way from any page.
func Resolve(l Link) Rendered {
	href := strings.TrimSpace(l.Href)
	external := IsExternal(href)
	if !external {
		href = rootAbsolute(href)
	}
	r := Rendered{
		Label:    strings.TrimSpace(l.Label),
		Href:     href,
		NewTab:   l.NewTab,
		External: external,
		Kind:     KindLink,
	}
	if external {
		r.Kind = KindAnchor
	}
	if l.NewTab {
		r.Target = newTabTarget
		r.Rel = newTabRel
	}
	return r
}

// ResolveAll resolves links in order.
func ResolveAll(in []Link) []Rendered {
	out := make([]Rendered, 0, len(in))
	for _, l := range in {
		out = append(out, Resolve(l))
	}
	return out
}

// IsExternal reports whether href names a host, including protocol-relative //host/path.
func IsExternal(href string) bool {
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return u.Host != ""
}

// Credits lays out links as an English list: "A", "A and B", "A, B, and C".
func Credits(in []Rendered) []Credit {
	out := make([]Credit, 0, len(in))
	for i, l := range in {
		sep := ""
		switch remaining := len(in) - i - 1; {
		case remaining == 0:
		case len(in) == 2:
			sep = " and "
		case remaining == 1:
			sep = ", and "
		default:
			sep = ", "
		}
		out = append(out, Credit{Link: l, Separator: sep})
	}
	return out
}

func rootAbsolute(href string) string {
	if href == "" {
		return "/"
	}
	if strings.HasPrefix(href, "#") || strings.HasPrefix(href, "?") {
		return "/" + href
	}
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "" {
		// mailto: and friends pass through untouched
		return href
	}
	if strings.HasPrefix(u.Path, "/") {
		return href
	}
	u.Path = path.Clean("/" + u.Path)
	return u.String()
}
