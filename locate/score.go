package locate

import "math"

// Scoring weights.
const (
	MainTagScore    = 30
	ArticleTagScore = 20
	SectionTagScore = 10

	ClassNameScore = 30
	IDNameScore    = 35

	DensityWeight = 10

	MaxPositionScore = 20

	SizeScoreNarrow = 20 // coverage in [0.3, 0.7]
	SizeScoreWide   = 10 // coverage in [0.1, 0.9]

	UnwantedPenalty = -100
)

// Structure weights and caps.
const (
	HeadingWeight   = 5
	HeadingCap      = 25
	ParagraphWeight = 2
	ParagraphCap    = 20
	ListWeight      = 3
	ListCap         = 15
	ImageWeight     = 2
	ImageCap        = 10
)

// ContentNames are class and id fragments that suggest main content.
var ContentNames = []string{"main", "content", "article", "post", "body", "text", "story", "entry"}

// UnwantedNames are class and id fragments that suggest page chrome.
var UnwantedNames = []string{
	"nav", "menu", "header", "footer", "sidebar", "aside", "ad", "banner",
	"promo", "popup", "modal", "comment", "reply", "share", "social",
	"related", "recommend",
}

// Score rates how likely v is to be the main content of its page.
// Higher is better. The result is unbounded and may be negative.
func Score(v ElementView) float64 {
	return TagScore(v) +
		NameScore(v) +
		TextDensity(v)*DensityWeight +
		PositionScore(v) +
		SizeScore(v) +
		StructureScore(v) +
		UnwantedScore(v)
}

// TagScore rates the semantic tag or landmark role.
func TagScore(v ElementView) float64 {
	switch {
	case v.Tag == "main" || v.Role == "main":
		return MainTagScore
	case v.Tag == "article" || v.Role == "article":
		return ArticleTagScore
	case v.Tag == "section":
		return SectionTagScore
	}
	return 0
}

// NameScore rates content-like class and id fragments.
func NameScore(v ElementView) float64 {
	return float64(len(containsAny(v.Class, ContentNames)))*ClassNameScore +
		float64(len(containsAny(v.ID, ContentNames)))*IDNameScore
}

// TextDensity combines the text-to-markup ratio, paragraph children and the
// amount of text.
func TextDensity(v ElementView) float64 {
	var ratio float64
	if v.MarkupLength > 0 {
		ratio = float64(v.TextLength) / float64(v.MarkupLength)
	}
	return ratio*5 +
		float64(v.ParagraphChildren)*2 +
		math.Min(float64(v.TextLength)/1000, 10)
}

// PositionScore decays linearly with the distance between the element's
// center and the viewport's center.
func PositionScore(v ElementView) float64 {
	half := v.Viewport.HalfDiagonal()
	if half == 0 {
		return 0
	}
	x, y := v.Rect.Center()
	cx, cy := v.Viewport.Center()
	d := math.Hypot(x-cx, y-cy)
	return MaxPositionScore * math.Max(0, 1-d/half)
}

// SizeScore rates the share of the viewport the element covers.
func SizeScore(v ElementView) float64 {
	area := v.Viewport.Area()
	if area == 0 {
		return 0
	}
	coverage := v.Rect.Area() / area
	switch {
	case coverage >= 0.3 && coverage <= 0.7:
		return SizeScoreNarrow
	case coverage >= 0.1 && coverage <= 0.9:
		return SizeScoreWide
	}
	return 0
}

// StructureScore rates headings, paragraphs, lists and images inside the
// element.
func StructureScore(v ElementView) float64 {
	return capped(v.Headings*HeadingWeight, HeadingCap) +
		capped(v.Paragraphs*ParagraphWeight, ParagraphCap) +
		capped(v.Lists*ListWeight, ListCap) +
		capped(v.Images*ImageWeight, ImageCap)
}

// UnwantedScore penalizes chrome-like class and id fragments. The penalty
// is additive: a strong enough element still wins.
func UnwantedScore(v ElementView) float64 {
	if len(containsAny(v.Class, UnwantedNames)) > 0 || len(containsAny(v.ID, UnwantedNames)) > 0 {
		return UnwantedPenalty
	}
	return 0
}

func capped(n, limit int) float64 {
	return float64(min(n, limit))
}
