package scoring

import (
	"strings"
	"time"

	"github.com/glec/leads-api/internal/entity"
)

const (
	categorySourceType      = "source_type"
	categoryLibraryValue    = "library_value"
	categoryEmailEngagement = "email_engagement"
	categoryCompanySize     = "company_size"
	categoryConsent         = "marketing_consent"
	categoryPhone           = "phone_provided"
	categoryUTM             = "utm_tracking"
	categoryTimePenalty     = "time_penalty"
)

var largeCorporationDomains = []string{
	"samsung.com",
	"lg.com",
	"sk.com",
	"hyundai.com",
	"posco.com",
	"hanwha.com",
	"lotte.com",
	"gs.com",
	"kt.com",
	"skt.com",
}

var logisticsDomains = []string{
	"dhl.com",
	"fedex.com",
	"ups.com",
	"cjlogistics.com",
	"hanjin.com",
	"kmlogis.com",
	"pantos.com",
	"lotte-glogis.com",
}

var genericEmailDomains = []string{
	"gmail.com",
	"naver.com",
	"daum.net",
	"hotmail.com",
	"outlook.com",
	"kakao.com",
	"icloud.com",
}

// LibraryScoreResult reports the aggregate library score and the
// per-category breakdown.
type LibraryScoreResult struct {
	Total     int
	Breakdown map[string]int
}

// ComputeLibraryScore evaluates a library download lead on the 0-100 scale.
// It is used for the initial score at download time and recomputed whenever
// the engagement webhook flips a flag.
func ComputeLibraryScore(lead entity.LibraryLead, now time.Time) LibraryScoreResult {
	breakdown := map[string]int{
		categorySourceType:      30,
		categoryLibraryValue:    scoreLibraryValue(lead.LibraryCategory),
		categoryEmailEngagement: scoreEmailEngagement(lead),
		categoryCompanySize:     inferCompanySizeScore(emailDomain(lead.Email)),
		categoryConsent:         0,
		categoryPhone:           0,
		categoryUTM:             0,
		categoryTimePenalty:     0,
	}
	if lead.MarketingConsent {
		breakdown[categoryConsent] = 10
	}
	if lead.Phone != nil && strings.TrimSpace(*lead.Phone) != "" {
		breakdown[categoryPhone] = 10
	}
	if hasUTM(lead) {
		breakdown[categoryUTM] = 10
	}
	if now.Sub(lead.CreatedAt) > 30*24*time.Hour && !lead.EmailOpened {
		breakdown[categoryTimePenalty] = -10
	}

	total := 0
	for _, value := range breakdown {
		total += value
	}

	return LibraryScoreResult{
		Total:     clamp(total),
		Breakdown: breakdown,
	}
}

// Grade buckets a score into the outreach priority used by the sales team.
func Grade(score int) string {
	switch {
	case score >= 80:
		return "HOT"
	case score >= 60:
		return "WARM"
	case score >= 40:
		return "COLD"
	default:
		return "LOW"
	}
}

func scoreLibraryValue(category *string) int {
	if category == nil {
		return 5
	}
	switch strings.ToUpper(strings.TrimSpace(*category)) {
	case "FRAMEWORK":
		return 20
	case "WHITEPAPER":
		return 15
	case "CASE_STUDY":
		return 10
	default:
		return 5
	}
}

func scoreEmailEngagement(lead entity.LibraryLead) int {
	score := 0
	if lead.EmailOpened {
		score += 10
	}
	if lead.DownloadLinkClicked {
		score += 20
	}
	return score
}

// inferCompanySizeScore ranks the email domain: conglomerates first,
// logistics operators next, generic mail providers last.
func inferCompanySizeScore(domain string) int {
	if domain == "" {
		return 0
	}
	for _, corp := range largeCorporationDomains {
		if strings.Contains(domain, corp) {
			return 20
		}
	}
	for _, operator := range logisticsDomains {
		if strings.Contains(domain, operator) {
			return 18
		}
	}
	for _, generic := range genericEmailDomains {
		if domain == generic {
			return 0
		}
	}
	return 10
}

func hasUTM(lead entity.LibraryLead) bool {
	for _, value := range []*string{lead.UTMSource, lead.UTMMedium, lead.UTMCampaign} {
		if value != nil && strings.TrimSpace(*value) != "" {
			return true
		}
	}
	return false
}

func emailDomain(email string) string {
	_, domain, found := strings.Cut(email, "@")
	if !found {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(domain))
}
