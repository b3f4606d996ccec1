package stock

import (
	"regexp"
	"strconv"
	"strings"
)

type Item struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
	// Price is not published by the source page and stays 0.
	Price int `json:"price"`
}

var (
	quantitySuffix = regexp.MustCompile(`(?i)^(.+?)\s*x(\d+)$`)
	leadingDigits  = regexp.MustCompile(`^\d+`)
)

// looseSuffix only accepts a literal lowercase " x" so names such as
// "Magic Xylophone" stay whole.
var looseSuffix = regexp.MustCompile(`^(.+?) x(\S*)$`)

// ParseItem turns a list entry like "Carrot x12" into an Item.
func ParseItem(text string) Item {
	text = strings.TrimSpace(text)

	if m := quantitySuffix.FindStringSubmatch(text); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return Item{Name: name, Stock: parseStock(m[2])}
		}
	}

	// "Carrot xabc": the marker is there but the quantity is not a number.
	if m := looseSuffix.FindStringSubmatch(text); m != nil {
		return Item{Name: strings.TrimSpace(m[1]), Stock: parseStock(leadingDigits.FindString(m[2]))}
	}

	return Item{Name: text, Stock: 1}
}

func parseStock(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
