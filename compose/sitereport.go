package compose

import (
	"time"

	"github.com/fieldops/sitedoc/ink"
)

// OnsiteReportInput is the flat record an onsite service report is generated
// from. Optional fields render a placeholder when empty; Logo is an optional
// data:image/jpeg;base64 payload.
type OnsiteReportInput struct {
	BusinessName string
	CustomerName string
	SiteAddress  string
	Reference    string
	Engineer     string

	ArrivedAt  time.Time
	DepartedAt time.Time

	WorkSummary   string
	MaterialsUsed string
	// Notes is the free-text narrative; RichNotes renders it as Markdown.
	Notes     string
	RichNotes bool

	FollowUps []string

	SignedBy   string
	SignedRole string
	Signature  ink.Signature

	Logo string
}

func (in OnsiteReportInput) document() document {
	return document{
		kind:     "site-report",
		title:    "Onsite Service Report",
		business: in.BusinessName,
		logo:     in.Logo,
		identity: []pair{
			{"Customer", in.CustomerName},
			{"Site address", in.SiteAddress},
		},
		details: []pair{
			{"Reference", in.Reference},
			{"Engineer", in.Engineer},
			{"Visit date", formatDate(in.ArrivedAt)},
			{"Time on site", timeRange(in.ArrivedAt, in.DepartedAt)},
		},
		blocks: []block{
			{title: "Work carried out", text: in.WorkSummary},
			{title: "Materials used", text: in.MaterialsUsed},
			{title: "Notes", text: in.Notes, rich: in.RichNotes},
		},
		listTitle:  "Follow-up actions",
		listItems:  in.FollowUps,
		signedBy:   in.SignedBy,
		signedRole: in.SignedRole,
		signature:  in.Signature,
		reference:  in.Reference,
		createdAt:  in.DepartedAt,
	}
}

// timeRange formats "arrived - departed"; either side may be missing.
func timeRange(arrived, departed time.Time) string {
	a, d := formatTime(arrived), formatTime(departed)
	switch {
	case a == "" && d == "":
		return ""
	case d == "":
		return a
	case a == "":
		return d
	default:
		return a + " - " + d
	}
}
