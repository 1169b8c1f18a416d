package check

import (
	"log/slog"

	"git.home.luguber.info/inful/notesite/internal/logfields"
)

// DefaultRules returns the full rule set in reporting order.
func DefaultRules() []Rule {
	return []Rule{
		&NavbarSidebarRule{},
		&NavbarDocRule{},
		&SidebarDocRule{},
		&FooterLinkRule{},
		&MarkdownLinkRule{},
		&LocaleRule{},
		&MetadataDuplicateRule{},
		&MetadataSitePathRule{},
		&JSONLDRule{},
		&AssetURLRule{},
		&SearchCredentialsRule{},
		&MathPluginRule{},
		&PrismThemeRule{},
		&EditURLRule{},
	}
}

// Run applies rules (DefaultRules when none are given) to in.
func Run(in *Input, rules ...Rule) *Result {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	res := &Result{Rules: len(rules)}
	if in.Docs != nil {
		res.Docs = in.Docs.Len()
	}
	for _, rule := range rules {
		issues := rule.Check(in)
		if len(issues) > 0 {
			slog.Debug("Rule reported issues", logfields.Rule(rule.Name()), logfields.Count(len(issues)))
		}
		res.Issues = append(res.Issues, issues...)
	}
	return res
}
