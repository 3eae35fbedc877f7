package interview

import "strings"

var resumeIndicators = []string{
	"experience", "education", "skills", "work history",
	"employment", "university", "college", "degree",
	"project", "certification", "professional",
}

var nonResumeIndicators = []string{
	"ticket", "booking", "pnr", "fare", "invoice", "receipt",
	"passenger", "train", "flight", "reservation",
	"confirmation number", "total amount", "tax invoice",
	"payment confirmation", "transaction id",
}

// LooksLikeResume is the keyword heuristic gating interview start. Tickets,
// invoices and similar uploads carry several booking markers and few resume
// sections; those are rejected before any application row is created.
func LooksLikeResume(text string) bool {
	lower := strings.ToLower(text)

	resumeCount := 0
	for _, indicator := range resumeIndicators {
		if strings.Contains(lower, indicator) {
			resumeCount++
		}
	}
	nonResumeCount := 0
	for _, indicator := range nonResumeIndicators {
		if strings.Contains(lower, indicator) {
			nonResumeCount++
		}
	}

	if nonResumeCount >= 2 && resumeCount < 3 {
		return false
	}
	return resumeCount >= 2
}
