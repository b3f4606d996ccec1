package scraper

import (
	"regexp"
	"strings"

	"garden-stock-api/internal/pkg/errs"

	"github.com/PuerkitoBio/goquery"
)

// RawSection is one candidate category block as found in the page, before any
// interpretation of its text.
type RawSection struct {
	Heading    string
	UpdateText string // text after "updates in:", valid when HasUpdate
	HasUpdate  bool
	Items      []string
	HasList    bool
}

// Layout knows where sections live in a given page design. Swapping the
// Layout is all that is needed when the source site changes its markup.
type Layout interface {
	Sections(doc *goquery.Document) ([]RawSection, error)
}

var gridContainerSelectors = []string{
	`div.grid.grid-cols-1.md\:grid-cols-3.gap-6.px-6.text-left.max-w-screen-lg.mx-auto`,
	"div.grid",
	"main",
	"section",
}

var updateMarker = regexp.MustCompile(`(?i)updates in:[ \t]*(.*)`)

const textSelector = "p, div, span"

// GridLayout reads the card grid used by the stock page: each card is a div
// with an h2 title, an "Updates in: 03m 56s" line and a ul of items.
type GridLayout struct{}

func (GridLayout) Sections(doc *goquery.Document) ([]RawSection, error) {
	container := findContainer(doc)
	if container == nil {
		return nil, errs.Mark(errs.New("container not found"), errs.ErrExtractionFailed)
	}

	var sections []RawSection
	container.Find("div, section, article").Each(func(_ int, candidate *goquery.Selection) {
		heading := candidate.Find("h2").First()
		if heading.Length() == 0 {
			return
		}

		sec := RawSection{Heading: normalizeSpace(heading.Text())}

		candidate.Find(textSelector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
			m := updateMarker.FindStringSubmatch(el.Text())
			if m == nil || hasMarkedDescendant(el) {
				return true
			}
			sec.UpdateText = strings.TrimSpace(m[1])
			sec.HasUpdate = true
			return false
		})

		list := candidate.Find("ul").First()
		if list.Length() > 0 {
			sec.HasList = true
			list.Find("li").Each(func(_ int, li *goquery.Selection) {
				if text := normalizeSpace(li.Text()); text != "" {
					sec.Items = append(sec.Items, text)
				}
			})
		}

		sections = append(sections, sec)
	})

	return sections, nil
}

func findContainer(doc *goquery.Document) *goquery.Selection {
	for _, selector := range gridContainerSelectors {
		if found := doc.Find(selector).First(); found.Length() > 0 {
			return found
		}
	}
	return nil
}

// hasMarkedDescendant reports whether a deeper element also carries the
// "updates in:" marker; the innermost one is used.
func hasMarkedDescendant(el *goquery.Selection) bool {
	return el.Find(textSelector).FilterFunction(func(_ int, d *goquery.Selection) bool {
		return updateMarker.MatchString(d.Text())
	}).Length() > 0
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
