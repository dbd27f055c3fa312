package scrapeall

import "strings"

// Route is an administration route: one of several alternative content
// variants of the same page, gated behind a client-side toggle.
type Route string

// Known routes. The ordering of Routes() is the fixed priority used to
// break scoring ties and to order toggle attempts.
const (
	RouteOral       Route = "oral"
	RouteInjectable Route = "injectable"
	RouteNasal      Route = "nasal"
	RouteTopical    Route = "topical"

	// RouteUnassigned marks sections not attributed to any route.
	RouteUnassigned Route = "unassigned"
)

// Routes returns the classifiable routes in priority order.
func Routes() []Route {
	return []Route{RouteOral, RouteInjectable, RouteNasal, RouteTopical}
}

// RouteKeywords maps each route to its indicator keywords. Matching is
// case-insensitive substring search.
type RouteKeywords map[Route][]string

// DefaultRouteKeywords returns the built-in indicator table.
func DefaultRouteKeywords() RouteKeywords {
	return RouteKeywords{
		RouteOral:       {"oral", "capsule", "tablet", "sublingual", "swallow", "by mouth"},
		RouteInjectable: {"injectable", "injection", "subcutaneous", "intramuscular", "syringe", "reconstitut", "vial"},
		RouteNasal:      {"nasal", "intranasal", "nostril", "nasal spray"},
		RouteTopical:    {"topical", "cream", "transdermal", "apply to skin", "dermal"},
	}
}

// RouteScore counts keyword indicators per route. Scores are ephemeral:
// built during classification and discarded once a route is decided.
type RouteScore map[Route]int

// Best returns the highest-scoring route. Ties break by Routes() priority
// order; all-zero scores default to RouteInjectable.
func (s RouteScore) Best() Route {
	best := RouteInjectable
	bestScore := 0

	for _, route := range Routes() {
		if s[route] > bestScore {
			best = route
			bestScore = s[route]
		}
	}

	return best
}

// ScoreText scores a title and body against the keyword table. A keyword
// present in the title counts double relative to one present in the body.
func ScoreText(title, body string, keywords RouteKeywords) RouteScore {
	title = strings.ToLower(title)
	body = strings.ToLower(body)

	score := make(RouteScore, len(keywords))
	for route, words := range keywords {
		total := 0
		for _, w := range words {
			if strings.Contains(title, w) {
				total += 2
			}
			if strings.Contains(body, w) {
				total++
			}
		}
		score[route] = total
	}

	return score
}

// ScoreSections scores a whole page by accumulating ScoreText over all
// sections.
func ScoreSections(sections []Section, keywords RouteKeywords) RouteScore {
	score := make(RouteScore, len(keywords))
	for _, s := range sections {
		for route, n := range ScoreText(s.Title, s.Body, keywords) {
			score[route] += n
		}
	}
	return score
}
