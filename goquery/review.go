package goquery

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/reviewskim"
	"golang.org/x/net/html"
)

var (
	votesRe    = regexp.MustCompile(`^(\d+) out of (\d+) people found the following review useful:$`)
	scoreRe    = regexp.MustCompile(`^(\d+)/(\d+)$`)
	reviewerRe = regexp.MustCompile(`/user/ur(\d+)/`)
	placeRe    = regexp.MustCompile(`^from (.+)$`)
)

// reviewState is the position of the record parser within one review.
// Each state names the last field that has been consumed.
type reviewState int

const (
	postAnchor reviewState = iota
	postTitle
	postScore
	postReviewer
	postPlace
	done
)

// reviewerShape is how the reviewer link renders the reviewer's name.
type reviewerShape int

const (
	// The link holds the name.
	namedReviewer reviewerShape = iota
	// The link holds only whitespace.
	blankReviewer
	// The link is empty and followed directly by a line break.
	breakReviewer
)

// recordParser walks forward from a review's avatar, one state at a time.
type recordParser struct {
	state  reviewState
	cursor *html.Node
	review *reviewskim.Review
}

// extractReview extracts the review anchored on an avatar image.
// The returned review has no rank; the caller assigns it.
func extractReview(anchor *html.Node, movieID int, pageURL string) (*reviewskim.Review, error) {
	p := &recordParser{
		state:  postAnchor,
		cursor: anchor,
		review: &reviewskim.Review{MovieID: movieID, URL: pageURL},
	}
	for p.state != done {
		if err := p.step(); err != nil {
			var x *reviewskim.ExtractionError
			if errors.As(err, &x) {
				x.ReviewerID = p.review.ReviewerID
				x.URL = pageURL
			}
			return nil, err
		}
	}
	return p.review, nil
}

func (p *recordParser) step() error {
	switch p.state {
	case postAnchor:
		if err := p.votes(); err != nil {
			return err
		}
		return p.title()
	case postTitle:
		return p.score()
	case postScore:
		return p.reviewer()
	case postReviewer:
		return p.place()
	case postPlace:
		return p.text()
	}
	return reviewskim.Errorf(reviewskim.EINTERNAL, "unexpected review state %d", p.state)
}

// votes reads the usefulness line that precedes the avatar link. Reviews
// nobody voted on have no such line; whatever precedes them is ignored.
func (p *recordParser) votes() error {
	from := p.cursor
	if isElement(from.Parent, "a") {
		from = from.Parent
	}
	n := prevMeaningful(from)
	if n == nil || n.Type != html.TextNode {
		return nil
	}
	match := votesRe.FindStringSubmatch(strings.TrimSpace(n.Data))
	if match == nil {
		return nil
	}
	likes, err1 := strconv.Atoi(match[1])
	total, err2 := strconv.Atoi(match[2])
	if err1 != nil || err2 != nil {
		return reviewskim.Extractf(reviewskim.EPATTERN, "votes", "vote counts out of range in %q", match[0])
	}
	dislikes := total - likes
	if dislikes < 0 {
		return reviewskim.Extractf(reviewskim.EPATTERN, "votes", "%d of %d people found the review useful", likes, total)
	}
	p.review.Likes = &likes
	p.review.Dislikes = &dislikes
	return nil
}

func (p *recordParser) title() error {
	h := nextMeaningful(after(p.cursor))
	if !isElement(h, "h2") {
		return reviewskim.Extractf(reviewskim.ESTRUCTURE, "title", "expected <h2> after avatar, found %s", describe(h))
	}
	p.review.Title = collapseSpace(textContent(h))
	p.cursor = h
	p.state = postTitle
	return nil
}

// score reads the optional "<n>/10" rating image that follows the title.
func (p *recordParser) score() error {
	n := nextMeaningful(after(p.cursor))
	if n == nil {
		return reviewskim.Extractf(reviewskim.ESTRUCTURE, "score", "review ends after title")
	}
	p.state = postScore
	if !isElement(n, "img") {
		p.cursor = n
		return nil
	}
	alt, _ := attr(n, "alt")
	match := scoreRe.FindStringSubmatch(strings.TrimSpace(alt))
	if match == nil {
		return reviewskim.Extractf(reviewskim.EPATTERN, "score", "unexpected rating %q", alt)
	}
	score, _ := strconv.Atoi(match[1])
	scale, _ := strconv.Atoi(match[2])
	if score < 1 || score > 10 || scale != 10 {
		return reviewskim.Extractf(reviewskim.EPATTERN, "score", "rating %q is not between 1/10 and 10/10", alt)
	}
	p.review.Score = &score
	p.cursor = after(n)
	return nil
}

func (p *recordParser) reviewer() error {
	link := scan(p.cursor, isReviewerLink, endOfReview)
	if link == nil {
		return reviewskim.Extractf(reviewskim.ESTRUCTURE, "reviewer", "no reviewer link")
	}
	href, _ := attr(link, "href")
	id, err := strconv.Atoi(reviewerRe.FindStringSubmatch(href)[1])
	if err != nil || id <= 0 {
		return reviewskim.Extractf(reviewskim.EPATTERN, "reviewer", "unexpected reviewer link %q", href)
	}
	p.review.ReviewerID = id

	shape, err := shapeOf(link)
	if err != nil {
		return err
	}
	switch shape {
	case namedReviewer:
		name := collapseSpace(textContent(link))
		p.review.Reviewer = &name
		p.cursor = after(link)
	case blankReviewer:
		p.cursor = after(link)
	case breakReviewer:
		p.cursor = after(nonBlank(after(link)))
	}
	p.state = postReviewer
	return nil
}

// shapeOf classifies how a reviewer link renders the reviewer's name.
func shapeOf(link *html.Node) (reviewerShape, error) {
	if link.FirstChild == nil {
		if isElement(nonBlank(after(link)), "br") {
			return breakReviewer, nil
		}
		return 0, reviewskim.Extractf(reviewskim.ESTRUCTURE, "reviewer", "empty reviewer link not followed by a line break")
	}
	if strings.TrimSpace(textContent(link)) != "" {
		return namedReviewer, nil
	}
	for c := link.FirstChild; c != nil; c = c.NextSibling {
		if !isBlank(c) {
			return 0, reviewskim.Extractf(reviewskim.ESTRUCTURE, "reviewer", "reviewer link holds %s instead of a name", describe(c))
		}
	}
	return blankReviewer, nil
}

// place reads the optional "from <place>" line and the review date.
func (p *recordParser) place() error {
	n := nextMeaningful(p.cursor)
	var date *html.Node
	switch {
	case isElement(n, "small"):
		date = n
	case n != nil && n.Type == html.TextNode:
		text := collapseSpace(n.Data)
		match := placeRe.FindStringSubmatch(text)
		if match == nil {
			return reviewskim.Extractf(reviewskim.EPATTERN, "place", "unexpected place %q", text)
		}
		place := match[1]
		p.review.Place = &place
		date = scan(after(n), func(n *html.Node) bool { return isElement(n, "small") }, endOfReview)
		if date == nil {
			return reviewskim.Extractf(reviewskim.ESTRUCTURE, "date", "no date after place")
		}
	default:
		return reviewskim.Extractf(reviewskim.ESTRUCTURE, "place", "expected place or date after reviewer, found %s", describe(n))
	}

	text := collapseSpace(textContent(date))
	t, err := time.Parse(dateLayout, text)
	if err != nil {
		return reviewskim.Extractf(reviewskim.EPATTERN, "date", "unexpected date %q", text)
	}
	p.review.Date = t
	p.cursor = date
	p.state = postPlace
	return nil
}

// text reads the review body, skipping the spoiler warning paragraph.
func (p *recordParser) text() error {
	body := nextParagraph(after(p.cursor))
	if body == nil {
		return reviewskim.Extractf(reviewskim.ESTRUCTURE, "text", "no review body")
	}
	text := paragraphs(textContent(body))
	if isSpoilerMarker(text) {
		p.review.Spoilers = true
		body = nextParagraph(after(body))
		if body == nil {
			return reviewskim.Extractf(reviewskim.ESTRUCTURE, "text", "no review body after spoiler warning")
		}
		text = paragraphs(textContent(body))
	}
	if text == "" || isSpoilerMarker(text) {
		return reviewskim.Extractf(reviewskim.EPATTERN, "text", "empty review body")
	}
	p.review.Text = text
	p.state = done
	return nil
}

func nextParagraph(n *html.Node) *html.Node {
	return scan(n, func(n *html.Node) bool { return isElement(n, "p") }, isAvatar)
}

// isSpoilerMarker reports whether text is the spoiler warning. Some pages
// end the warning with a full stop.
func isSpoilerMarker(text string) bool {
	return strings.TrimSuffix(text, ".") == reviewskim.SpoilerMarker
}

func isReviewerLink(n *html.Node) bool {
	if !isElement(n, "a") {
		return false
	}
	href, _ := attr(n, "href")
	return reviewerRe.MatchString(href)
}

func isAvatar(n *html.Node) bool {
	return isElement(n, "img") && hasClass(n, "avatar")
}

// endOfReview reports whether n lies past the header of the current review.
func endOfReview(n *html.Node) bool {
	return isElement(n, "p") || isAvatar(n)
}

// nonBlank returns n itself or the first node after it that is not blank.
func nonBlank(n *html.Node) *html.Node {
	for n != nil && isBlank(n) {
		n = next(n)
	}
	return n
}

// describe names a node for error messages.
func describe(n *html.Node) string {
	switch {
	case n == nil:
		return "end of document"
	case n.Type == html.ElementNode:
		return "<" + n.Data + ">"
	case n.Type == html.TextNode:
		return strconv.Quote(collapseSpace(n.Data))
	}
	return "node"
}
