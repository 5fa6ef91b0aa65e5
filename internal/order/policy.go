package order

import (
	"fmt"
	"strings"
)

// RowPolicy decides which well-formed rows become order lines.
type RowPolicy string

const (
	// PolicyRequireQuantity accepts rows with a non-blank quantity cell.
	PolicyRequireQuantity RowPolicy = "require-quantity"
	// PolicyRequireArticle accepts rows with a non-blank article cell.
	PolicyRequireArticle RowPolicy = "require-article"
	// PolicyLengthOnly accepts every row long enough to hold both cells.
	PolicyLengthOnly RowPolicy = "length-only"
)

// DefaultRowPolicy is used when no policy is configured.
const DefaultRowPolicy = PolicyRequireQuantity

// RowPolicies lists the accepted policy names.
var RowPolicies = []RowPolicy{PolicyRequireQuantity, PolicyRequireArticle, PolicyLengthOnly}

// ParseRowPolicy parses a policy name. The empty string selects the default.
func ParseRowPolicy(s string) (RowPolicy, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return DefaultRowPolicy, nil
	}
	for _, p := range RowPolicies {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown row policy '%s' (expected one of %v)", s, RowPolicies)
}

// check returns the reason a well-formed row is rejected, or "".
func (p RowPolicy) check(article, quantity string) string {
	switch p {
	case PolicyRequireArticle:
		if article == "" {
			return "missing article"
		}
	case PolicyLengthOnly:
	default:
		if quantity == "" {
			return "missing quantity"
		}
	}
	return ""
}
