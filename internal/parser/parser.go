package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BarkinBalci/launch-tracker/internal/domain"
	"github.com/BarkinBalci/launch-tracker/internal/retailer"
)

// Word characters and digits are matched by Unicode class; RE2's \b and
// \d only know ASCII.
const (
	wordStart = `(?:^|[^\p{L}\p{N}_])`
	wordEnd   = `(?:[^\p{L}\p{N}_]|$)`
)

var (
	announcementPattern = regexp.MustCompile(`(?i)prod`)
	pageCountPattern    = regexp.MustCompile(`(?i)(\p{Nd}+)\s*pages?`)
	tranchePattern      = regexp.MustCompile(`(?i)(Tranche|T)[\s-]?(\p{Nd}+)`)
)

// Detection is what could be extracted from a launch announcement.
type Detection struct {
	Retailer  string
	Tranche   string
	PageCount string
}

type matcher struct {
	name     string
	patterns []*regexp.Regexp
}

// Parser extracts launch details from free text using a retailer table.
type Parser struct {
	matchers []matcher
}

// New compiles the keyword patterns of table, preserving its order.
func New(table *retailer.Table) (*Parser, error) {
	matchers := make([]matcher, 0, len(table.Entries))
	for _, entry := range table.Entries {
		m := matcher{name: entry.Name}
		for _, keyword := range entry.Keywords {
			pattern, err := regexp.Compile(wordStart + regexp.QuoteMeta(strings.ToLower(keyword)) + wordEnd)
			if err != nil {
				return nil, fmt.Errorf("invalid keyword %q for %s: %w", keyword, entry.Name, err)
			}
			m.patterns = append(m.patterns, pattern)
		}
		matchers = append(matchers, m)
	}
	return &Parser{matchers: matchers}, nil
}

// IsLaunchAnnouncement reports whether a chat message looks like a production launch.
func IsLaunchAnnouncement(text string) bool {
	return announcementPattern.MatchString(text)
}

// Parse extracts retailer, tranche and page count. Anything not found is
// reported with the domain sentinel values.
func (p *Parser) Parse(text string) Detection {
	d := Detection{
		Retailer:  domain.UnknownRetailer,
		Tranche:   domain.UnknownTranche,
		PageCount: domain.NoPageCount,
	}

	if m := pageCountPattern.FindStringSubmatch(text); m != nil {
		d.PageCount = m[1]
	}
	if m := tranchePattern.FindStringSubmatch(text); m != nil {
		d.Tranche = "T" + m[2]
	}

	lower := strings.ToLower(text)
	for _, m := range p.matchers {
		for _, pattern := range m.patterns {
			if pattern.MatchString(lower) {
				d.Retailer = m.name
				return d
			}
		}
	}
	return d
}
