package model

import "strings"

// Category names a keyword bucket in the taxonomy file
type Category string

// Unclassified is the reserved bucket for discovered, not yet reviewed vocabulary
const Unclassified Category = "UNCLASSIFIED_KEYWORDS"

const (
	CategoryQuestion           Category = "QUESTION_KEYWORDS"
	CategoryThanks             Category = "THANKS_KEYWORDS"
	CategoryGreeting           Category = "GREETING_KEYWORDS"
	CategoryFarewell           Category = "FAREWELL_KEYWORDS"
	CategoryStatement          Category = "STATEMENT_KEYWORDS"
	CategoryApologies          Category = "APOLOGIES_KEYWORDS"
	CategoryComplaints         Category = "COMPLAINTS_KEYWORDS"
	CategoryNeutral            Category = "NEUTRAL_KEYWORDS"
	CategoryServiceInformation Category = "SERVICE_INFORMATION_KEYWORDS"
	CategoryPositive           Category = "POSITIVE_KEYWORDS"
	CategoryNegative           Category = "NEGATIVE_KEYWORDS"
	CategorySuggestions        Category = "SUGGESTIONS_KEYWORDS"
)

// categories is the fixed enumeration offered to operators, in display order.
var categories = []Category{
	CategoryQuestion,
	CategoryThanks,
	CategoryGreeting,
	CategoryFarewell,
	CategoryStatement,
	CategoryApologies,
	CategoryComplaints,
	CategoryNeutral,
	CategoryServiceInformation,
	CategoryPositive,
	CategoryNegative,
	CategorySuggestions,
}

// Categories returns the classification targets (the reserved bucket excluded)
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// IsRecognized reports whether c is a valid classification target
func (c Category) IsRecognized() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}

// ParseCategory accepts either the full file key ("THANKS_KEYWORDS") or the
// short form ("thanks") and returns the matching category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range categories {
		if string(c) == s || c.Short() == s {
			return c, true
		}
	}
	return "", false
}

// Short returns the lowercase name without the _KEYWORDS suffix
func (c Category) Short() string {
	return strings.ToLower(strings.TrimSuffix(string(c), "_KEYWORDS"))
}

// DialogueAct is the coarse intent assigned to an utterance
type DialogueAct string

const (
	ActQuestion  DialogueAct = "question"
	ActThanks    DialogueAct = "thanks"
	ActGreeting  DialogueAct = "greeting"
	ActFarewell  DialogueAct = "farewell"
	ActStatement DialogueAct = "statement"
	ActUnknown   DialogueAct = "unknown"
)

// ActPriority lists the act categories in the order they are tested
var ActPriority = []struct {
	Category Category
	Act      DialogueAct
}{
	{CategoryQuestion, ActQuestion},
	{CategoryThanks, ActThanks},
	{CategoryGreeting, ActGreeting},
	{CategoryFarewell, ActFarewell},
	{CategoryStatement, ActStatement},
}

// Tone is the emotional polarity of an utterance
type Tone string

const (
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"
)

// PositiveCategories count toward a positive tone
var PositiveCategories = []Category{CategoryPositive, CategoryThanks, CategoryGreeting, CategoryFarewell}

// NegativeCategories count toward a negative tone
var NegativeCategories = []Category{CategoryNegative, CategoryComplaints}
