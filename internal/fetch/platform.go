package fetch

import (
	"net/url"
	"strings"
)

// Portal is a job board the scraper engine covers.
type Portal string

const (
	PortalLinkedIn  Portal = "linkedin"
	PortalIndeed    Portal = "indeed"
	PortalGlassdoor Portal = "glassdoor"
	PortalGoogle    Portal = "google"
	PortalNaukri    Portal = "naukri"
	PortalUnknown   Portal = "unknown"
)

var portalHosts = []struct {
	portal Portal
	hosts  []string
}{
	{PortalLinkedIn, []string{"linkedin.com", "lnkd.in"}},
	{PortalIndeed, []string{"indeed.com", "indeed.co"}},
	{PortalGlassdoor, []string{"glassdoor."}},
	{PortalNaukri, []string{"naukri.com"}},
	{PortalGoogle, []string{"google.com", "googleusercontent.com"}},
}

// DetectPortal identifies the job board from a posting URL.
func DetectPortal(urlStr string) Portal {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PortalUnknown
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return PortalUnknown
	}
	for _, ph := range portalHosts {
		for _, h := range ph.hosts {
			if strings.Contains(host, h) {
				return ph.portal
			}
		}
	}
	return PortalUnknown
}

// PortalLabel returns the portal a job came from, using the reported label
// when present and the link's host otherwise.
func PortalLabel(reported, link string) string {
	if label := strings.TrimSpace(reported); label != "" {
		return label
	}
	if p := DetectPortal(link); p != PortalUnknown {
		return string(p)
	}
	return ""
}

// PortalContentSelectors returns content selectors tuned for a portal.
func PortalContentSelectors(portal Portal) []string {
	switch portal {
	case PortalLinkedIn:
		return []string{
			".show-more-less-html__markup",
			".description__text",
			".jobs-description__content",
			"main",
		}
	case PortalIndeed:
		return []string{
			"#jobDescriptionText",
			".jobsearch-jobDescriptionText",
			"main",
		}
	case PortalGlassdoor:
		return []string{
			"[class*='JobDetails_jobDescription']",
			".jobDescriptionContent",
			"#JobDescriptionContainer",
			"main",
		}
	case PortalNaukri:
		return []string{
			"[class*='job-desc']",
			".dang-inner-html",
			".JDC",
			"main",
		}
	default:
		return JobPostingSelectors()
	}
}

// PortalNoiseSelectors returns extra elements to strip for a portal.
func PortalNoiseSelectors(portal Portal) []string {
	switch portal {
	case PortalLinkedIn:
		return []string{".sign-in-modal", ".contextual-sign-in-modal", ".similar-jobs"}
	case PortalIndeed:
		return []string{"#mosaic-provider-reportcontent", ".jobsearch-RelatedLinks"}
	case PortalGlassdoor:
		return []string{"[data-test='hardsell-overlay']"}
	default:
		return nil
	}
}
