// Package domain defines the core data types for user accounts, tickets,
// code suggestions, and chat turns. These types map one-to-one onto the
// JSON file contracts of the user store, the ticket store, and the prompt
// cache, and onto the session state held by the controller.
package domain

// UserAccount represents one registered employee. Accounts are keyed by
// employee ID in the user store file; the key itself is not repeated inside
// the record, mirroring the on-disk layout.
//
// PasswordHash is a bcrypt hash and is never serialized into API responses.
type UserAccount struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"password_hash"`
}

// FullName returns "First Last", tolerating a missing half, used for the
// post-login greeting.
func (u UserAccount) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Ticket represents one immutable work item mirrored from the issue
// tracker. Tickets are keyed by a normalized ticket ID (trimmed,
// upper-cased) in the ticket store file and are read-only from the
// application's perspective.
type Ticket struct {
	StoryLine          string   `json:"story_line"`
	Description        string   `json:"description"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
	StoryPoints        int      `json:"story_points"`
	ReferenceLinks     []string `json:"reference_links"`
}

// ChatTurn is one exchanged pair within a session's chat history: the user
// message and the assistant reply, in arrival order.
type ChatTurn struct {
	User string `json:"user"`
	AI   string `json:"ai"`
}

// Satisfaction is the tri-state flag a user sets after reviewing a code
// suggestion. The zero value is SatisfactionUnknown.
type Satisfaction int

const (
	// SatisfactionUnknown means the user has not answered yet.
	SatisfactionUnknown Satisfaction = iota
	// SatisfactionYes means the suggestion was accepted.
	SatisfactionYes
	// SatisfactionNo means the user wants to continue in chat.
	SatisfactionNo
)

// String returns the wire representation used in session view responses.
func (s Satisfaction) String() string {
	switch s {
	case SatisfactionYes:
		return "yes"
	case SatisfactionNo:
		return "no"
	default:
		return "unknown"
	}
}
