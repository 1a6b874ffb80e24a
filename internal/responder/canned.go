package responder

import (
	"fmt"
	"strings"
)

// CannedAnswer returns a prepared answer chosen by keywords in the query.
// It is used when no language model is reachable.
func CannedAnswer(query string) string {
	q := strings.ToLower(query)

	switch {
	case containsAny(q, "snap", "food", "nutrition"):
		return cannedSNAP
	case containsAny(q, "housing", "section 8", "rent"):
		return cannedHousing
	case containsAny(q, "health", "medicaid", "medicare"):
		return cannedHealth
	default:
		return cannedMenu
	}
}

// FallbackAnswer is returned when the selected backend fails. It always
// echoes the query.
func FallbackAnswer(query string) string {
	return fmt.Sprintf(`I'm sorry, I'm having trouble processing your request right now. You asked about: "%s"

For immediate help with public services, you can:
- Call 2-1-1 for information and referrals
- Visit Benefits.gov to find programs
- Contact your local Department of Human Services
- Visit your local library or community center for assistance

Please try again in a moment, or contact one of these resources for immediate help.`, query)
}

const emptyAnswer = "I'm sorry, I couldn't generate a response at this time."

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

const cannedSNAP = `Based on the information I have, SNAP (Supplemental Nutrition Assistance Program) provides nutrition benefits to help families purchase healthy food.

To apply for SNAP:
1. Contact your local SNAP office
2. Complete an application form
3. Provide required documentation including proof of income
4. Attend an interview
5. You'll receive a decision within 30 days

Eligibility is based on household income (must be at or below 130% of the federal poverty level) and other factors. Benefits are provided on an EBT card that works like a debit card at authorized retailers.

Would you like me to help you find your local SNAP office or provide more specific information about eligibility requirements?`

const cannedHousing = `I can help you with housing assistance programs. There are several options available:

Section 8 Housing Choice Voucher Program:
- Helps low-income families afford decent housing
- You pay 30% of your income toward rent
- The government pays the difference to your landlord

Public Housing:
- Government-owned housing units for low-income families
- Rent is based on your income (usually 30% of adjusted gross income)

To apply for housing assistance:
1. Contact your local Public Housing Authority (PHA)
2. Complete an application with required documentation
3. You'll be placed on a waiting list
4. Attend an interview when contacted

Would you like help finding your local PHA or learning more about specific programs?`

const cannedHealth = `I can help you understand healthcare benefits and programs:

Medicaid:
- Provides health coverage to low-income individuals and families
- Covers doctor visits, hospital stays, prescription drugs, and more
- Eligibility varies by state and income level

Medicare:
- Federal health insurance for people 65 and older
- Also covers some younger people with disabilities
- Includes Part A (hospital insurance) and Part B (medical insurance)

Affordable Care Act (ACA) Marketplace:
- Health insurance marketplace for individuals and families
- Subsidies available based on income
- Open enrollment typically November-December

To apply for healthcare benefits:
1. Visit Healthcare.gov or your state's marketplace
2. Complete an application with income and household information
3. Compare plans and select coverage
4. Enroll in your chosen plan

Would you like help finding specific information about any of these programs?`

const cannedMenu = `I'm here to help you navigate public services and government benefits. I can provide information about:

- SNAP (food assistance) benefits
- Housing assistance programs like Section 8
- Healthcare benefits including Medicaid and Medicare
- General navigation help for finding local offices and required documents

What specific program or service would you like to learn more about? I can help you understand eligibility requirements, application processes, and where to get started.`
