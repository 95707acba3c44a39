package order

import (
	"fmt"
	"strings"
)

const (
	Currency             = "DH"
	customNotePending    = "Oui (détails à préciser)"
	colorSeparator       = ", "
	summaryLineSeparator = "\n"
)

// ComposeSummary returns the order summary lines. Optional lines (colors,
// customization) are omitted rather than left blank.
func (s Selection) ComposeSummary() []string {
	lines := []string{
		"Produit : " + s.product.Name,
		fmt.Sprintf("Prix unitaire : %s %s", s.product.Price.StringFixed(2), Currency),
		fmt.Sprintf("Quantité : %d", s.quantity),
	}

	if colors := s.colorLine(); colors != "" {
		lines = append(lines, "Couleur(s) : "+colors)
	}

	if s.custom {
		note := strings.TrimSpace(s.note)
		if note == "" {
			note = customNotePending
		}
		lines = append(lines, "Personnalisation : "+note)
	}

	lines = append(lines, "Lien : "+s.product.link())

	return lines
}

// SummaryText joins the summary lines into the message body
func (s Selection) SummaryText() string {
	return strings.Join(s.ComposeSummary(), summaryLineSeparator)
}

func (s Selection) colorLine() string {
	if len(s.colors) == 0 {
		return ""
	}
	if s.quantity == 1 {
		names := make([]string, len(s.colors))
		for i, c := range s.colors {
			names[i] = c.Name
		}
		return strings.Join(names, colorSeparator)
	}

	parts := make([]string, len(s.colors))
	for i, c := range s.colors {
		parts[i] = fmt.Sprintf("%s x%d", c.Name, c.Count)
	}
	return strings.Join(parts, colorSeparator)
}

// link is the product page URL, or its site-relative path when no public
// URL is known
func (p Product) link() string {
	if p.URL != "" {
		return p.URL
	}
	return "/products/" + p.ID
}
