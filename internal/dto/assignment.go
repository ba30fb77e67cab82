package dto

// AssignEnrolledRequest bulk-assigns a set of fully-approved clients to one
// marketing team lead. Applied all-or-nothing: a validation failure on any
// selected client assigns none of them.
type AssignEnrolledRequest struct {
	ClientIDs       []string `json:"client_ids" binding:"required,min=1"`
	MarketingLeadID string   `json:"marketing_team_lead_id" binding:"required"`
	Remark          string   `json:"remark"`
}

// AssignEnrolledResponse reports the outcome of a bulk assignment.
type AssignEnrolledResponse struct {
	AssignedCount int `json:"assignedCount"`
}

// MarketingLeadResponse is one selectable marketing team lead.
type MarketingLeadResponse struct {
	UserID        string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AssignedCount int    `json:"assignedCount"`
}

// ListMarketingLeadsResponse wraps the marketing team lead dropdown data.
type ListMarketingLeadsResponse struct {
	Leads []MarketingLeadResponse `json:"leads"`
}
