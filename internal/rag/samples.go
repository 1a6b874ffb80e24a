package rag

// SampleDocuments is the built-in knowledge base used when no data
// directory is available
func SampleDocuments() []Document {
	return []Document{
		{
			ID: "snap_benefits.txt",
			Text: `SNAP Benefits (Supplemental Nutrition Assistance Program)

SNAP provides nutrition benefits to supplement the food budget of needy families so they can purchase healthy food and move towards self-sufficiency.

Eligibility Requirements:
- Household income must be at or below 130% of the federal poverty level
- Must be a U.S. citizen or legal resident
- Must meet work requirements (unless exempt)

Application Process:
1. Contact your local SNAP office
2. Complete an application form
3. Provide required documentation
4. Attend an interview
5. Receive decision within 30 days

Benefits are provided on an EBT card that works like a debit card at authorized retailers.`,
			Metadata: map[string]string{
				"source":   "snap_benefits.txt",
				"category": "nutrition",
				"title":    "SNAP Benefits Guide",
			},
		},
		{
			ID: "housing_assistance.txt",
			Text: `Housing Assistance Programs

Section 8 Housing Choice Voucher Program:
- Helps low-income families afford decent, safe, and sanitary housing
- Participants pay 30% of their income toward rent
- Government pays the difference to the landlord

Public Housing:
- Government-owned housing units for low-income families
- Rent is based on income (usually 30% of adjusted gross income)
- Managed by local Public Housing Authorities (PHAs)

Emergency Shelter:
- Temporary housing for homeless individuals and families
- Available through local shelters and organizations
- Often requires referral from social services

Application Process:
1. Contact your local Public Housing Authority
2. Complete application with required documentation
3. Wait for placement on waiting list
4. Attend interview when contacted`,
			Metadata: map[string]string{
				"source":   "housing_assistance.txt",
				"category": "housing",
				"title":    "Housing Assistance Programs",
			},
		},
		{
			ID: "healthcare_benefits.txt",
			Text: `Healthcare Benefits and Programs

Medicaid:
- Provides health coverage to low-income individuals and families
- Covers doctor visits, hospital stays, prescription drugs, and more
- Eligibility varies by state and income level

Medicare:
- Federal health insurance for people 65 and older
- Also covers some younger people with disabilities
- Part A (hospital insurance) and Part B (medical insurance)

Affordable Care Act (ACA) Marketplace:
- Health insurance marketplace for individuals and families
- Subsidies available based on income
- Open enrollment period typically November-December

Children's Health Insurance Program (CHIP):
- Provides health coverage to children in families that earn too much for Medicaid
- Low-cost health coverage for children

Application Process:
1. Visit Healthcare.gov or your state's marketplace
2. Complete application with income and household information
3. Compare plans and select coverage
4. Enroll in chosen plan`,
			Metadata: map[string]string{
				"source":   "healthcare_benefits.txt",
				"category": "healthcare",
				"title":    "Healthcare Benefits Guide",
			},
		},
		{
			ID: "general_navigation.txt",
			Text: `General Public Service Navigation

Finding Local Offices:
- Use Benefits.gov to find programs and local offices
- Contact your state's Department of Human Services
- Visit local community centers and libraries

Required Documents:
- Government-issued photo ID
- Social Security cards for all household members
- Proof of income (pay stubs, tax returns)
- Proof of expenses (rent receipts, utility bills)
- Birth certificates for children

Getting Help:
- Call 2-1-1 for information and referrals
- Visit local social services offices
- Contact nonprofit organizations in your area
- Use online resources like Benefits.gov

Tips for Success:
- Keep copies of all documents
- Follow up on applications
- Ask questions if you don't understand
- Appeal decisions if you disagree`,
			Metadata: map[string]string{
				"source":   "general_navigation.txt",
				"category": "general",
				"title":    "Public Service Navigation Guide",
			},
		},
	}
}
