package model

import "time"

// Report is the output of a batch analysis run over the whole corpus
type Report struct {
	GeneratedAt time.Time    `json:"generated_at"`
	Source      SourceMeta   `json:"source"`
	Calls       []CallReport `json:"calls"`
	Failures    []Failure    `json:"failures,omitempty"`

	// CategoryFrequency counts keyword hits per category and side; it is the
	// table behind the per-category bar chart and the side/category heatmap.
	CategoryFrequency map[Category]SideCounts `json:"category_frequency"`

	Summary Summary `json:"summary"`
}

// SourceMeta records which inputs produced the report
type SourceMeta struct {
	EmployeeFile string `json:"employee_file"`
	CustomerFile string `json:"customer_file"`
	KeywordsFile string `json:"keywords_file"`
	Keywords     int    `json:"keywords"`     // Total keywords across all categories
	Unclassified int    `json:"unclassified"` // Keywords still awaiting review
}

// SideCounts splits a count between employee and customer utterances
type SideCounts struct {
	Employee int `json:"employee"`
	Customer int `json:"customer"`
}

// Failure records a call the batch could not analyze
type Failure struct {
	CallID string `json:"call_id"`
	Error  string `json:"error"`
}

// CallReport holds the analysis for both sides of one call
type CallReport struct {
	CallID   string              `json:"call_id"`
	Employee []UtteranceAnalysis `json:"employee"`
	Customer []UtteranceAnalysis `json:"customer"`
	Stats    CallStats           `json:"stats"`
}

// UtteranceAnalysis is the per-line result of the analysis pipeline
type UtteranceAnalysis struct {
	Text        string         `json:"text"`                  // Lowercased transcript line
	Corrected   string         `json:"corrected,omitempty"`   // Set only when spelling changed the line
	Corrections []Correction   `json:"corrections,omitempty"` // Individual word replacements
	Filtered    string         `json:"filtered"`              // Line after stop-word removal
	Keywords    []KeywordHit   `json:"keywords,omitempty"`    // Tokens found in the taxonomy
	Lexical     []LexicalToken `json:"lexical,omitempty"`
	Act         DialogueAct    `json:"act"`
	Tone        Tone           `json:"tone"`
	Score       int            `json:"score"` // Quality score (0-100)
}

// Correction is a single spelling replacement
type Correction struct {
	Original   string  `json:"original"`
	Corrected  string  `json:"corrected"`
	Similarity float64 `json:"similarity"`
}

// KeywordHit is a segment token that belongs to a taxonomy category
type KeywordHit struct {
	Token    string   `json:"token"`
	Category Category `json:"category"`
}

// LexicalKind classifies a lexical token
type LexicalKind string

const (
	LexicalWord        LexicalKind = "WORD"
	LexicalNumber      LexicalKind = "NUMBER"
	LexicalPunctuation LexicalKind = "PUNCTUATION"
)

// LexicalToken is a typed token from the lexical tokenizer
type LexicalToken struct {
	Kind  LexicalKind `json:"type"`
	Value string      `json:"value"`
}

// CallStats aggregates a call's utterances
type CallStats struct {
	Acts         map[DialogueAct]int `json:"acts"`
	Tones        map[Tone]int        `json:"tones"`
	Lexical      map[LexicalKind]int `json:"lexical"`
	MeanScore    float64             `json:"mean_score"`
	Utterances   int                 `json:"utterances"`
	Corrections  int                 `json:"corrections"`
	KeywordHits  int                 `json:"keyword_hits"`
	Unclassified int                 `json:"unclassified_hits"` // Hits that are still awaiting review
}

// Summary aggregates the whole run
type Summary struct {
	Calls      int                 `json:"calls"`
	Failed     int                 `json:"failed"`
	Utterances int                 `json:"utterances"`
	Acts       map[DialogueAct]int `json:"acts"`
	Tones      map[Tone]int        `json:"tones"`
	MeanScore  float64             `json:"mean_score"`
}
