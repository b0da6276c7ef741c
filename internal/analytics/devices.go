package analytics

import (
	"sort"
	"strings"

	"site-analytics-service/internal/model"
)

const deviceTopLanguages = 5

// Device classes reported by the devices view.
const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
)

// ClassifyDevice buckets a page view's client metadata into a device
// class, by viewport width when reported, else by user agent.
func ClassifyDevice(c model.ClientInfo) string {
	if c.ViewportWidth > 0 {
		switch {
		case c.ViewportWidth < 768:
			return DeviceMobile
		case c.ViewportWidth < 1024:
			return DeviceTablet
		default:
			return DeviceDesktop
		}
	}
	ua := strings.ToLower(c.UserAgent)
	switch {
	case strings.Contains(ua, "ipad") || strings.Contains(ua, "tablet"):
		return DeviceTablet
	case strings.Contains(ua, "mobi") || strings.Contains(ua, "android"):
		return DeviceMobile
	default:
		return DeviceDesktop
	}
}

// DeviceBreakdown counts page views per device class and ranks
// browser languages.
func DeviceBreakdown(s Snapshot) model.DeviceReport {
	out := model.DeviceReport{
		Devices:      map[string]int{},
		TopLanguages: []model.LanguageCount{},
	}

	langs := map[string]int{}
	for _, pv := range s.PageViews {
		out.Devices[ClassifyDevice(pv.Client)]++
		if pv.Client.Language != "" {
			langs[pv.Client.Language]++
		}
	}

	for lang, views := range langs {
		out.TopLanguages = append(out.TopLanguages, model.LanguageCount{Language: lang, Views: views})
	}
	sort.Slice(out.TopLanguages, func(i, j int) bool {
		if out.TopLanguages[i].Views != out.TopLanguages[j].Views {
			return out.TopLanguages[i].Views > out.TopLanguages[j].Views
		}
		return out.TopLanguages[i].Language < out.TopLanguages[j].Language
	})
	if len(out.TopLanguages) > deviceTopLanguages {
		out.TopLanguages = out.TopLanguages[:deviceTopLanguages]
	}
	return out
}
