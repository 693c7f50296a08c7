package ixl

import (
	"bytes"
	"context"
	"fmt"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"studyreport/lib/htmlutil"
)

// Skill is one node of a subject's public skill tree.
type Skill struct {
	Grade     string
	Number    string
	Name      string
	Permacode string
}

var skillsClient = newSkillsClient()

func newSkillsClient() *resty.Client {
	c := resty.New()
	c.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(c.GetClient().Transport)
	c.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	c.SetTimeout(time.Second * 30)

	// 2 requests max per second; burst >= 2 just means none are dropped
	limiter := rate.NewLimiter(2, 2)
	c.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})
	return c
}

// FetchSkillTree pulls the public skill listing for a subject page, e.g.
// https://www.ixl.com/science/earth-science. No login needed; this is the
// plain-HTTP path, the only part of IXL that doesn't require the browser.
func FetchSkillTree(ctx context.Context, subjectURL string) ([]Skill, error) {
	ctx, span := tracer.Start(ctx, "FetchSkillTree")
	defer span.End()

	res, err := skillsClient.R().SetContext(ctx).Get(subjectURL)
	if err != nil {
		return nil, err
	}
	if res.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch skill tree: unexpected status %d", res.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, err
	}
	return parseSkillTree(doc), nil
}

func parseSkillTree(doc *goquery.Document) []Skill {
	var skills []Skill
	doc.Find("div.skill-tree-category").Each(func(_ int, category *goquery.Selection) {
		grade := htmlutil.CleanText(category.Find("span.skill-tree-skills-header"))
		category.Find("li.skill-tree-skill-node").Each(func(_ int, node *goquery.Selection) {
			skills = append(skills, Skill{
				Grade:     grade,
				Number:    htmlutil.CleanText(node.Find("span.skill-tree-skill-number")),
				Name:      htmlutil.CleanText(node.Find("span.skill-tree-skill-name")),
				Permacode: node.Find("a.skill-tree-skill-link").AttrOr("data-permacode", ""),
			})
		})
	})
	return skills
}
