package render

import (
	"encoding/json"

	"git.home.luguber.info/inful/notesite/internal/config"
	"git.home.luguber.info/inful/notesite/internal/foundation/errors"
	"git.home.luguber.info/inful/notesite/internal/sidebars"
)

// sidebarsData resolves every sidebar for the theme's data directory. Doc ids
// missing from the index are dropped; check reports them.
func sidebarsData(in *Input) (map[string][]sidebars.Entry, error) {
	out := make(map[string][]sidebars.Entry, len(in.Sidebars))
	for _, id := range in.Sidebars.IDs() {
		entries, _, err := in.Sidebars.Resolve(id, in.Docs)
		if err != nil {
			return nil, errors.WrapError(err, errors.CategoryRender, "failed to resolve sidebar").
				WithContext("sidebar", id).
				Build()
		}
		if entries == nil {
			entries = []sidebars.Entry{}
		}
		out[id] = entries
	}
	return out, nil
}

// DocSearch holds the frontend parameters of the hosted search widget.
type DocSearch struct {
	AppID            string           `json:"appId"`
	APIKey           string           `json:"apiKey"`
	IndexName        string           `json:"indexName"`
	SearchPagePath   string           `json:"searchPagePath,omitempty"`
	ExternalURLRegex string           `json:"externalUrlRegex,omitempty"`
	SearchParameters *SearchParameters `json:"searchParameters,omitempty"`
}

// SearchParameters narrows queries to the current language when contextual
// search is enabled.
type SearchParameters struct {
	FacetFilters []string `json:"facetFilters"`
}

func docSearchJSON(s *config.Site) ([]byte, error) {
	a := s.ThemeConfig.Algolia
	ds := DocSearch{
		AppID:            a.AppID,
		APIKey:           a.APIKey,
		IndexName:        a.IndexName,
		SearchPagePath:   a.SearchPagePath,
		ExternalURLRegex: a.ExternalURLRegex,
	}
	if a.ContextualSearch {
		ds.SearchParameters = &SearchParameters{FacetFilters: []string{"language:" + s.I18n.DefaultLocale}}
	}
	data, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
