package analytics

import (
	"strings"

	"site-analytics-service/internal/model"
)

// Referrer buckets reported by the traffic-sources view.
const (
	SourceGoogle    = "Google"
	SourceFacebook  = "Facebook"
	SourceTwitter   = "Twitter"
	SourceLinkedIn  = "LinkedIn"
	SourceInstagram = "Instagram"
	SourceDirect    = "Direct"
	SourceOther     = "Other"
)

// ClassifyReferrer maps a referrer URL onto a fixed source bucket by
// substring match. An empty referrer is a direct visit.
func ClassifyReferrer(referrer string) string {
	if referrer == "" {
		return SourceDirect
	}
	ref := strings.ToLower(referrer)
	switch {
	case strings.Contains(ref, "google"):
		return SourceGoogle
	case strings.Contains(ref, "facebook"):
		return SourceFacebook
	case strings.Contains(ref, "twitter"), strings.Contains(ref, "t.co"):
		return SourceTwitter
	case strings.Contains(ref, "linkedin"):
		return SourceLinkedIn
	case strings.Contains(ref, "instagram"):
		return SourceInstagram
	default:
		return SourceOther
	}
}

// Sources counts page views per referrer bucket.
func Sources(s Snapshot) model.TrafficSources {
	out := model.TrafficSources{Sources: map[string]int{}}
	for _, pv := range s.PageViews {
		out.Sources[ClassifyReferrer(pv.Referrer)]++
		out.Total++
	}
	return out
}
