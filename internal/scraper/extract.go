package scraper

import (
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/sp-probables/internal/filter"
	"github.com/pfrederiksen/sp-probables/internal/probable"
)

// GridSelector locates the element wrapping the probables table
const GridSelector = "div.table-scroll"

// StructureError reports that the page lacks the expected grid markup
type StructureError struct {
	Selector string
	Message  string
}

func (e *StructureError) Error() string {
	return e.Message
}

// findGrid returns the first table inside the grid container
func findGrid(doc *goquery.Document) (*goquery.Selection, error) {
	container := doc.Find(GridSelector).First()
	if container.Length() == 0 {
		return nil, &StructureError{
			Selector: GridSelector,
			Message:  "could not find table with class 'table-scroll'",
		}
	}

	table := container.Find("table").First()
	if table.Length() == 0 {
		return nil, &StructureError{
			Selector: GridSelector + " table",
			Message:  "no table found within the 'table-scroll' div",
		}
	}

	return table, nil
}

// ResolveDates builds the column date map from the grid's header row.
// A page without the grid yields an empty map.
func ResolveDates(doc *goquery.Document, now time.Time) probable.ColumnDates {
	table, err := findGrid(doc)
	if err != nil {
		return probable.ColumnDates{}
	}
	return columnDates(table, now)
}

// columnDates resolves every header cell after the label cell. Cells are
// indexed from 1 so that index i names the i-th cell of the row.
func columnDates(table *goquery.Selection, now time.Time) probable.ColumnDates {
	dates := make(probable.ColumnDates)

	header := table.Find("tr").First()
	header.Find("th").Each(func(i int, th *goquery.Selection) {
		if i == 0 {
			return
		}
		if date, ok := probable.ResolveHeaderDate(cellText(th), now); ok {
			dates[i] = date
		}
	})

	return dates
}

// ExtractStarts collects every pitcher start in the grid that passes the
// players filter, sorted by date with ties kept in row/column order.
//
// A page without the grid returns an empty list and a *StructureError.
func ExtractStarts(doc *goquery.Document, players filter.Players, now time.Time) ([]*probable.Start, error) {
	starts := make([]*probable.Start, 0)

	table, err := findGrid(doc)
	if err != nil {
		return starts, err
	}

	dates := columnDates(table, now)

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		// header row
		if i == 0 {
			return
		}

		row.Find("td").Each(func(j int, td *goquery.Selection) {
			column := j + 1

			entry, ok := probable.ParseEntry(cellText(td))
			if !ok {
				return
			}
			if !players.Matches(entry.Pitcher) {
				return
			}

			// Data cells count from 1 but header cells keep their row position,
			// so the header for data column n is at n-1.
			starts = append(starts, probable.NewStart(dates.Lookup(column-1), entry))
		})
	})

	sort.SliceStable(starts, func(i, j int) bool {
		return starts[i].Date < starts[j].Date
	})

	return starts, nil
}

// cellText joins the whitespace-trimmed text nodes of a cell without a separator
func cellText(sel *goquery.Selection) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return b.String()
}
