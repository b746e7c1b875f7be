// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package safety

import "github.com/pdiddy/learnpath/pkg/types"

// The keyword tables below are plain substring matches, preserved
// verbatim for behavioral compatibility. They are deliberately isolated
// from the pipeline logic so a statistical classifier could replace them
// without touching the screening flow.

// hardBlockKeywords map each terminal category to its trigger phrases.
var hardBlockKeywords = map[types.SafetyCategory][]string{
	types.CategoryIllegal: {
		"how to steal",
		"how to shoplift",
		"make illegal drugs",
		"manufacture illegal",
		"synthesize drugs",
		"sell drugs",
		"counterfeit money",
		"launder money",
		"evade taxes illegally",
		"hack into someone",
		"break into a house",
		"pick a lock to break in",
	},
	types.CategoryHarmful: {
		"make a bomb",
		"build a bomb",
		"make explosives",
		"build explosives",
		"poison someone",
		"hurt someone",
		"harm someone",
		"untraceable weapon",
		"hurt myself",
	},
	types.CategoryExploitation: {
		"exploit children",
		"human trafficking",
		"stalk someone",
		"spy on someone without",
		"blackmail someone",
		"manipulate someone into",
	},
	types.CategoryHate: {
		"join a terrorist",
		"become a terrorist",
		"white supremacist",
		"ethnic cleansing",
		"radicalize",
	},
}

// blockedMessages are the canned user-facing reasons per category.
var blockedMessages = map[types.SafetyCategory]string{
	types.CategoryIllegal:      "This request appears to seek instruction in illegal activity, which we can't help with.",
	types.CategoryHarmful:      "This request appears to seek content that could directly harm people, which we can't help with.",
	types.CategoryExploitation: "This request appears to involve exploiting or surveilling others, which we can't help with.",
	types.CategoryHate:         "This request appears to involve hateful or extremist content, which we can't help with.",
}

// legalAlternatives suggests a lawful educational path for specific
// blocked phrases, when one is known.
var legalAlternatives = map[string][]string{
	"hack into someone": {
		"Ethical hacking and penetration testing courses",
		"Security certifications such as CEH or OSCP",
	},
	"make illegal drugs": {
		"Pharmacology and medicinal chemistry programs",
	},
	"synthesize drugs": {
		"Organic chemistry coursework",
		"Pharmaceutical sciences programs",
	},
	"counterfeit money": {
		"Currency security-feature design and printmaking",
	},
	"launder money": {
		"Forensic accounting and anti-money-laundering compliance courses",
	},
	"evade taxes illegally": {
		"Tax law and legitimate tax planning resources",
	},
	"pick a lock to break in": {
		"Locksport and locksmith certification programs",
	},
}

// disclaimerRule describes one disclaimer category.
type disclaimerRule struct {
	Type     types.DisclaimerType
	Severity types.Severity

	// RequiresAcceptance forces explicit acknowledgment before results
	// are shown.
	RequiresAcceptance bool

	Keywords []string
	Warning  string
}

// disclaimerRules are evaluated in order; the first match wins.
var disclaimerRules = []disclaimerRule{
	{
		Type:               types.DisclaimerMedical,
		Severity:           types.SeverityHigh,
		RequiresAcceptance: true,
		Keywords: []string{
			"medical", "medicine", "anatomy", "pharmacology", "nursing",
			"first aid", "mental health", "nutrition", "disease", "diagnosis",
		},
		Warning: "Educational content only; not a substitute for professional medical advice.",
	},
	{
		Type:     types.DisclaimerLegal,
		Severity: types.SeverityMedium,
		Keywords: []string{
			"law", "legal", "contract", "copyright", "immigration", "criminal justice",
		},
		Warning: "Educational content only; not a substitute for advice from a licensed attorney.",
	},
	{
		Type:               types.DisclaimerFinancial,
		Severity:           types.SeverityHigh,
		RequiresAcceptance: true,
		Keywords: []string{
			"investing", "stocks", "trading", "cryptocurrency", "retirement",
			"personal finance", "taxes",
		},
		Warning: "Educational content only; not financial advice. Investments carry risk.",
	},
	{
		Type:               types.DisclaimerSafetyCrit,
		Severity:           types.SeverityHigh,
		RequiresAcceptance: true,
		Keywords: []string{
			"electrical wiring", "welding", "scuba", "skydiving", "chainsaw",
			"firearm safety", "climbing", "electrician",
		},
		Warning: "This skill can cause serious injury; seek qualified in-person instruction.",
	},
	{
		Type:     types.DisclaimerControversial,
		Severity: types.SeverityLow,
		Keywords: []string{
			"evolution", "climate change", "vaccine", "politics", "religion",
		},
		Warning: "This topic attracts contested claims; resources aim for mainstream educational sources.",
	},
}

// ageRule describes one age-restricted topic category.
type ageRule struct {
	Category types.AgeCategory
	MinAge   int
	Keywords []string
}

// ageRules are evaluated in order; the first match wins.
var ageRules = []ageRule{
	{types.AgeAlcohol, 21, []string{"bartending", "mixology", "brewing beer", "winemaking", "distilling"}},
	{types.AgeGambling, 21, []string{"gambling", "poker strategy", "sports betting", "casino"}},
	{types.AgeFirearms, 18, []string{"firearm", "gun handling", "marksmanship", "hunting"}},
	{types.AgeMature, 18, []string{"mature content", "adult themes"}},
}
