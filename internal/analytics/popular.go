package analytics

import (
	"regexp"
	"sort"

	"site-analytics-service/internal/model"
)

// DefaultTopContentLimit caps the popular-content ranking when the
// caller passes no limit.
const DefaultTopContentLimit = 10

var articlePath = regexp.MustCompile(`^/articles/([^/?#]+)`)

// ArticleSlug extracts the content identifier from an article page
// path, or ok=false when the path is not an article.
func ArticleSlug(path string) (string, bool) {
	m := articlePath.FindStringSubmatch(path)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// PopularArticles ranks article page views by slug, descending, top
// limit entries.
func PopularArticles(s Snapshot, limit int) model.PopularContent {
	if limit <= 0 {
		limit = DefaultTopContentLimit
	}

	counts := map[string]int{}
	out := model.PopularContent{Articles: []model.ArticleStat{}}
	for _, pv := range s.PageViews {
		slug, ok := ArticleSlug(pv.Path)
		if !ok {
			continue
		}
		counts[slug]++
		out.TotalArticleViews++
	}

	for slug, views := range counts {
		out.Articles = append(out.Articles, model.ArticleStat{Slug: slug, Views: views})
	}
	sort.Slice(out.Articles, func(i, j int) bool {
		if out.Articles[i].Views != out.Articles[j].Views {
			return out.Articles[i].Views > out.Articles[j].Views
		}
		return out.Articles[i].Slug < out.Articles[j].Slug
	})
	if len(out.Articles) > limit {
		out.Articles = out.Articles[:limit]
	}
	return out
}
