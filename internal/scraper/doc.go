// Package scraper provides HTTP fetching and HTML extraction for the probables grid.
//
// The scraper fetches the public probables-grid page and walks the table inside
// its "table-scroll" container. Header cells are resolved to calendar dates and
// every data cell is matched against the pitcher entry grammar; matching cells
// become pitcher starts dated by their column.
package scraper
