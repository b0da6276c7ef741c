package analytics

import (
	"site-analytics-service/internal/model"
)

// EngagementMetrics summarizes behavioral named events: time on page,
// bounce rate, pages per session, and conversion-style counters.
// An empty snapshot yields all zeroes.
func EngagementMetrics(s Snapshot) model.Engagement {
	out := model.Engagement{SocialShares: map[string]int{}}

	var totalSeconds float64
	var timed int
	var bounceChecks, bounces int
	var totalPages, pagedChecks int

	for _, ev := range s.Events {
		switch ev.Kind {
		case model.KindTimeSpent:
			totalSeconds += ev.Payload.Seconds
			timed++
		case model.KindBounceCheck:
			bounceChecks++
			if !ev.Payload.HasScrolled && !ev.Payload.HasClicked {
				bounces++
			}
			if ev.Payload.PagesInSession > 0 {
				totalPages += ev.Payload.PagesInSession
				pagedChecks++
			}
		case model.KindNewsletter:
			out.NewsletterSignups++
		case model.KindContactForm:
			out.ContactSubmissions++
		case model.KindEventInterest:
			out.EventInterest++
		case model.KindSocialShare:
			platform := ev.Payload.Platform
			if platform == "" {
				platform = "unknown"
			}
			out.SocialShares[platform]++
		}
	}

	if timed > 0 {
		out.AvgTimeOnPage = round2(totalSeconds / float64(timed))
	}
	if bounceChecks > 0 {
		out.BounceRate = round2(float64(bounces) / float64(bounceChecks) * 100)
	}
	if pagedChecks > 0 {
		out.AvgPagesPerSession = round2(float64(totalPages) / float64(pagedChecks))
	}
	return out
}
