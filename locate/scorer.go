package locate

import (
	"math"
	"strings"

	"github.com/fwojciec/pagesnip"
)

// SemanticSelectors match landmark containers and common content classes.
var SemanticSelectors = []string{
	"main", `[role="main"]`, "article", `[role="article"]`, "section",
	".content", ".main-content", ".post-content", ".article-content",
	".entry-content", ".story-body", "#content", "#main",
}

// ContainerNames are class fragments that mark candidate containers.
var ContainerNames = []string{
	"content", "main", "article", "post", "body", "text", "story", "entry",
	"container", "wrapper",
}

// RefineSelectors are tried among the descendants of the best candidate.
var RefineSelectors = []string{
	"article", "main", `[role="main"]`, ".content", ".post-content",
	".article-content", ".entry-content", ".main-content", ".post-body",
	".article-body",
}

// Tuning values.
const (
	// DensityThreshold admits any element whose text density exceeds it.
	DensityThreshold = 5

	// Hysteresis is the margin a child must beat its parent by to replace it.
	Hysteresis = 0.2
)

// Candidate is an element with its score.
type Candidate struct {
	Element pagesnip.Element
	Score   float64
}

// Ensure Scorer implements pagesnip.Locator at compile time.
var _ pagesnip.Locator = (*Scorer)(nil)

// Scorer locates content by ranking candidate regions.
type Scorer struct{}

// NewScorer returns a new Scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Locate returns the best-scoring region of doc after refinement.
// Returns ENOTFOUND if the page has no candidates.
func (s *Scorer) Locate(doc pagesnip.Document) (*pagesnip.Location, error) {
	candidates := s.Candidates(doc)
	if len(candidates) == 0 {
		return nil, pagesnip.Errorf(pagesnip.ENOTFOUND, "no content candidates on %s", doc.URL())
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}

	best = s.Refine(doc, best)

	return &pagesnip.Location{
		Element:  best.Element,
		Strategy: pagesnip.StrategyHeuristic,
		Score:    best.Score,
	}, nil
}

// Candidates returns the scored candidates of doc in collection order.
func (s *Scorer) Candidates(doc pagesnip.Document) []Candidate {
	viewport := doc.Viewport()
	seen := make(map[pagesnip.Element]bool)
	var candidates []Candidate

	add := func(el pagesnip.Element, v ElementView) {
		if seen[el] {
			return
		}
		seen[el] = true
		candidates = append(candidates, Candidate{Element: el, Score: Score(v)})
	}

	if els, err := doc.Query(strings.Join(SemanticSelectors, ", ")); err == nil {
		for _, el := range els {
			if eligible(el) {
				add(el, NewView(el, viewport))
			}
		}
	}

	all := descendants(doc)

	for _, el := range all {
		if seen[el] || !eligible(el) {
			continue
		}
		class, _ := el.Attr("class")
		if len(containsAny(class, ContainerNames)) > 0 && IsValid(el) {
			add(el, NewView(el, viewport))
		}
	}

	for _, el := range all {
		if seen[el] || !eligible(el) {
			continue
		}
		v := NewView(el, viewport)
		if TextDensity(v) > DensityThreshold {
			add(el, v)
		}
	}

	return candidates
}

// Refine descends from c into more specific content. A descendant matching
// RefineSelectors is taken outright; otherwise the best direct child replaces
// c only if it beats c by the Hysteresis margin.
func (s *Scorer) Refine(doc pagesnip.Document, c Candidate) Candidate {
	viewport := doc.Viewport()
	for {
		if el := specificDescendant(c.Element); el != nil {
			c = Candidate{Element: el, Score: Score(NewView(el, viewport))}
			continue
		}

		var best *Candidate
		for _, child := range c.Element.Children() {
			if !IsValid(child) {
				continue
			}
			score := Score(NewView(child, viewport))
			if best == nil || score > best.Score {
				best = &Candidate{Element: child, Score: score}
			}
		}
		if best != nil && best.Score > c.Score+Hysteresis*math.Abs(c.Score) {
			c = *best
			continue
		}
		return c
	}
}

// specificDescendant returns the first valid descendant of el matching one
// of RefineSelectors, trying selectors in order.
func specificDescendant(el pagesnip.Element) pagesnip.Element {
	for _, sel := range RefineSelectors {
		els, err := el.Query(sel)
		if err != nil {
			continue
		}
		for _, d := range els {
			if IsValid(d) {
				return d
			}
		}
	}
	return nil
}

// eligible excludes root containers and elements that are not rendered.
func eligible(el pagesnip.Element) bool {
	return !pagesnip.IsRootContainer(el) && el.Visible()
}

func descendants(doc pagesnip.Document) []pagesnip.Element {
	body := doc.Body()
	if body == nil {
		return nil
	}
	els, err := body.Query("*")
	if err != nil {
		return nil
	}
	return els
}
