package check

import (
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/notesite/internal/config"
)

// MetadataDuplicateRule flags meta tags declared more than once; browsers and
// crawlers only honor one of them.
type MetadataDuplicateRule struct{}

func (r *MetadataDuplicateRule) Name() string { return "metadata-duplicate" }

func (r *MetadataDuplicateRule) Check(in *Input) []Issue {
	var issues []Issue
	first := map[string]int{}
	for i, m := range in.Site.ThemeConfig.Metadata {
		key := m.Key()
		if prev, ok := first[key]; ok {
			issues = append(issues, Issue{
				Rule:     r.Name(),
				Severity: SeverityWarning,
				Subject:  fmt.Sprintf("metadata[%d]", i),
				Message:  fmt.Sprintf("meta tag %q already declared at metadata[%d]", key, prev),
				Fix:      "remove one of the declarations",
			})
			continue
		}
		first[key] = i
	}
	return issues
}

// MetadataSitePathRule flags meta contents using the @site/ source alias,
// which is not a public URL.
type MetadataSitePathRule struct{}

func (r *MetadataSitePathRule) Name() string { return "metadata-site-path" }

func (r *MetadataSitePathRule) Check(in *Input) []Issue {
	var issues []Issue
	for i, m := range in.Site.ThemeConfig.Metadata {
		if !strings.HasPrefix(m.Content, config.SitePathPrefix) {
			continue
		}
		issues = append(issues, Issue{
			Rule:     r.Name(),
			Severity: SeverityWarning,
			Subject:  fmt.Sprintf("metadata[%d]", i),
			Message:  fmt.Sprintf("meta tag %q content %q is a source path, not a public URL", m.Key(), m.Content),
			Fix:      "use " + in.Site.AssetURL(m.Content),
		})
	}
	return issues
}

// JSONLDRule verifies structured-data head tags.
type JSONLDRule struct{}

func (r *JSONLDRule) Name() string { return "json-ld" }

func (r *JSONLDRule) Check(in *Input) []Issue {
	var issues []Issue
	for i, h := range in.Site.ThemeConfig.HeadTags {
		subject := fmt.Sprintf("head_tags[%d]", i)
		var docs []map[string]any
		switch {
		case h.JSONLD != nil:
			docs = []map[string]any{h.JSONLD}
		case strings.EqualFold(h.TagName, "script") && h.Attributes["type"] == "application/ld+json":
			var raw any
			if err := json.Unmarshal([]byte(h.InnerHTML), &raw); err != nil {
				issues = append(issues, Issue{
					Rule:     r.Name(),
					Severity: SeverityError,
					Subject:  subject,
					Message:  fmt.Sprintf("structured data is not valid JSON: %v", err),
				})
				continue
			}
			var ok bool
			if docs, ok = structuredDataObjects(raw); !ok {
				issues = append(issues, Issue{
					Rule:     r.Name(),
					Severity: SeverityError,
					Subject:  subject,
					Message:  "structured data must be an object or an array of objects",
				})
				continue
			}
		default:
			continue
		}
		for j, doc := range docs {
			docSubject := subject
			if len(docs) > 1 {
				docSubject = fmt.Sprintf("%s[%d]", subject, j)
			}
			issues = append(issues, r.checkObject(docSubject, doc)...)
		}
	}
	return issues
}

func (r *JSONLDRule) checkObject(subject string, doc map[string]any) []Issue {
	var issues []Issue
	for _, key := range []string{"@context", "@type"} {
		if _, ok := doc[key]; !ok {
			issues = append(issues, Issue{
				Rule:     r.Name(),
				Severity: SeverityError,
				Subject:  subject,
				Message:  "structured data is missing " + key,
			})
		}
	}
	if u, ok := doc["url"].(string); ok && !config.IsAbsoluteHTTPURL(u) {
		issues = append(issues, Issue{
			Rule:     r.Name(),
			Severity: SeverityWarning,
			Subject:  subject,
			Message:  fmt.Sprintf("structured data url %q is not absolute", u),
		})
	}
	return issues
}

// structuredDataObjects accepts a single JSON-LD object or a top-level array of them.
func structuredDataObjects(raw any) ([]map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return []map[string]any{v}, true
	case []any:
		if len(v) == 0 {
			return nil, false
		}
		docs := make([]map[string]any, 0, len(v))
		for _, item := range v {
			doc, ok := item.(map[string]any)
			if !ok {
				return nil, false
			}
			docs = append(docs, doc)
		}
		return docs, true
	default:
		return nil, false
	}
}

// AssetURLRule verifies injected script and stylesheet references.
type AssetURLRule struct{}

func (r *AssetURLRule) Name() string { return "asset-url" }

func (r *AssetURLRule) Check(in *Input) []Issue {
	var issues []Issue
	check := func(subject, ref string) {
		switch {
		case strings.HasPrefix(ref, "//"):
			issues = append(issues, Issue{
				Rule:     r.Name(),
				Severity: SeverityWarning,
				Subject:  subject,
				Message:  fmt.Sprintf("%q is a protocol-relative URL, not a site-relative path", ref),
				Fix:      "use https:" + ref,
			})
		case strings.HasPrefix(ref, "/"):
		case config.IsAbsoluteHTTPURL(ref):
			if strings.HasPrefix(ref, "http://") {
				issues = append(issues, Issue{
					Rule:     r.Name(),
					Severity: SeverityWarning,
					Subject:  subject,
					Message:  fmt.Sprintf("%q is loaded over plain http", ref),
				})
			}
		default:
			issues = append(issues, Issue{
				Rule:     r.Name(),
				Severity: SeverityError,
				Subject:  subject,
				Message:  fmt.Sprintf("%q is neither an absolute URL nor a site-relative path", ref),
			})
		}
	}
	for i, s := range in.Site.Scripts {
		check(fmt.Sprintf("scripts[%d]", i), s.Src)
	}
	for i, s := range in.Site.Stylesheets {
		check(fmt.Sprintf("stylesheets[%d]", i), s.Href)
	}
	return issues
}
