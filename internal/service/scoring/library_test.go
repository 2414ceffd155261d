package scoring

import (
	"testing"
	"time"

	"github.com/glec/leads-api/internal/entity"
)

func TestComputeLibraryScore_FullSignals(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	phone := "+821012345678"
	lead := entity.LibraryLead{
		Email:               "jane@samsung.com",
		Phone:               &phone,
		LibraryCategory:     strPtr("FRAMEWORK"),
		MarketingConsent:    true,
		UTMSource:           strPtr("newsletter"),
		EmailOpened:         true,
		DownloadLinkClicked: true,
		CreatedAt:           now.Add(-24 * time.Hour),
	}

	result := ComputeLibraryScore(lead, now)
	if result.Total != 100 {
		t.Fatalf("expected clamped total 100, got %d", result.Total)
	}
	if result.Breakdown[categorySourceType] != 30 {
		t.Fatalf("expected source type 30, got %d", result.Breakdown[categorySourceType])
	}
	if result.Breakdown[categoryLibraryValue] != 20 {
		t.Fatalf("expected framework value 20, got %d", result.Breakdown[categoryLibraryValue])
	}
	if result.Breakdown[categoryEmailEngagement] != 30 {
		t.Fatalf("expected engagement 30, got %d", result.Breakdown[categoryEmailEngagement])
	}
	if result.Breakdown[categoryCompanySize] != 20 {
		t.Fatalf("expected conglomerate domain 20, got %d", result.Breakdown[categoryCompanySize])
	}
}

func TestComputeLibraryScore_TimePenalty(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	lead := entity.LibraryLead{
		Email:     "someone@gmail.com",
		CreatedAt: now.Add(-45 * 24 * time.Hour),
	}

	result := ComputeLibraryScore(lead, now)
	if result.Breakdown[categoryTimePenalty] != -10 {
		t.Fatalf("expected -10 penalty for stale unopened lead, got %d", result.Breakdown[categoryTimePenalty])
	}
	// 30 source + 5 default value + 0 generic domain - 10 penalty
	if result.Total != 25 {
		t.Fatalf("expected total 25, got %d", result.Total)
	}

	lead.EmailOpened = true
	result = ComputeLibraryScore(lead, now)
	if result.Breakdown[categoryTimePenalty] != 0 {
		t.Fatalf("expected no penalty once opened, got %d", result.Breakdown[categoryTimePenalty])
	}
}

func TestInferCompanySizeScore(t *testing.T) {
	cases := []struct {
		domain string
		want   int
	}{
		{"samsung.com", 20},
		{"mail.hyundai.com", 20},
		{"cjlogistics.com", 18},
		{"gmail.com", 0},
		{"naver.com", 0},
		{"acme.co.kr", 10},
		{"", 0},
	}

	for _, tc := range cases {
		if got := inferCompanySizeScore(tc.domain); got != tc.want {
			t.Fatalf("inferCompanySizeScore(%q)=%d, want %d", tc.domain, got, tc.want)
		}
	}
}

func TestGrade(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{95, "HOT"},
		{80, "HOT"},
		{65, "WARM"},
		{45, "COLD"},
		{10, "LOW"},
	}

	for _, tc := range cases {
		if got := Grade(tc.score); got != tc.want {
			t.Fatalf("Grade(%d)=%q, want %q", tc.score, got, tc.want)
		}
	}
}
