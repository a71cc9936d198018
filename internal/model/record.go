package model

// Side identifies which participant a transcript collection belongs to
type Side string

const (
	SideEmployee Side = "employee"
	SideCustomer Side = "customer"
)

// TextKey is the JSON field holding the utterances for this side
func (s Side) TextKey() string {
	return string(s) + "_text"
}

// IDKey is the JSON field holding the participant identifier for this side
func (s Side) IDKey() string {
	return string(s) + "_id"
}

// CallRecord is one side's transcript for a single call
type CallRecord struct {
	CallID        string   `json:"call_id"`
	ParticipantID string   `json:"participant_id,omitempty"`
	Side          Side     `json:"side"`
	Text          []string `json:"text"` // Utterances, lowercased at load
}
