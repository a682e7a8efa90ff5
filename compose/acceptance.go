package compose

import (
	"time"

	"github.com/fieldops/sitedoc/ink"
)

// Decision is the customer's sign-off outcome.
type Decision int

const (
	// DecisionAccepted records acceptance with no issues.
	DecisionAccepted Decision = 1
	// DecisionAcceptedWithSnags records acceptance subject to the listed
	// outstanding items.
	DecisionAcceptedWithSnags Decision = 2
	// DecisionNotAccepted records that the customer withheld acceptance.
	DecisionNotAccepted Decision = 3
)

// acceptanceStatements are the fixed texts keyed by decision code. An
// unknown code renders no statement.
var acceptanceStatements = map[Decision]string{
	DecisionAccepted:          "The works are accepted with no issues reported.",
	DecisionAcceptedWithSnags: "The works are accepted subject to the outstanding items listed below.",
	DecisionNotAccepted:       "The works are not accepted; the items below require attention.",
}

// AcceptanceInput is the flat record an acceptance sheet is generated from.
// Optional fields render a placeholder when empty; Logo is an optional
// data:image/jpeg;base64 payload; Signature may carry zero strokes.
type AcceptanceInput struct {
	BusinessName string
	CustomerName string
	ProjectName  string
	Reference    string
	CompletedAt  time.Time

	Decision Decision
	Snags    []string

	// Notes is the free-text narrative; RichNotes renders it as Markdown.
	Notes     string
	RichNotes bool

	SignedBy   string
	SignedRole string
	Signature  ink.Signature

	Logo string
}

func (in AcceptanceInput) document() document {
	return document{
		kind:     "acceptance",
		title:    "Acceptance Sheet",
		business: in.BusinessName,
		logo:     in.Logo,
		identity: []pair{
			{"Customer", in.CustomerName},
			{"Project", in.ProjectName},
		},
		details: []pair{
			{"Reference", in.Reference},
			{"Completed", formatDate(in.CompletedAt)},
		},
		statement: acceptanceStatements[in.Decision],
		blocks: []block{
			{title: "Notes", text: in.Notes, rich: in.RichNotes},
		},
		listTitle:  "Outstanding items",
		listItems:  in.Snags,
		signedBy:   in.SignedBy,
		signedRole: in.SignedRole,
		signature:  in.Signature,
		reference:  in.Reference,
		createdAt:  in.CompletedAt,
	}
}
