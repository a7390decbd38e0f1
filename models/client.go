package models

import "time"

// Client represents a firm client. Once a client code is assigned it is the
// permanent identity of the record.
type Client struct {
	ClientCode          string    `json:"client_code"`
	ClientName          string    `json:"client_name"`
	GroupName           *string   `json:"group_name"`
	Industry            *string   `json:"industry"`
	RelationshipPartner *string   `json:"relationship_partner"`
	PrimaryContactName  *string   `json:"primary_contact_name"`
	PrimaryContactEmail *string   `json:"primary_contact_email"`
	Status              string    `json:"status"` // Active, Inactive
	CreatedAt           time.Time `json:"created_at"`
	CreatedBy           string    `json:"created_by"`
}

// ClientInput is used for creating/updating clients. ClientCode may be left
// empty at creation, in which case one is generated.
type ClientInput struct {
	ClientCode          string  `json:"client_code"`
	ClientName          string  `json:"client_name"`
	GroupName           *string `json:"group_name"`
	Industry            *string `json:"industry"`
	RelationshipPartner *string `json:"relationship_partner"`
	PrimaryContactName  *string `json:"primary_contact_name"`
	PrimaryContactEmail *string `json:"primary_contact_email"`
	Status              string  `json:"status"`
}

func (c *ClientInput) Validate() string {
	if c.ClientName == "" {
		return "client_name is required"
	}
	switch c.Status {
	case "", StatusClientActive, StatusClientInactive:
	default:
		return "status must be one of: Active, Inactive"
	}
	if c.Status == "" {
		c.Status = StatusClientActive
	}
	return ""
}
