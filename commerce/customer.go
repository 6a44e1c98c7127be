package commerce

import "time"

// Customer is the storefront account attached to the current session.
type Customer struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	FirstName  string   `json:"firstName,omitempty"`
	LastName   string   `json:"lastName,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	CompanyID  *string  `json:"companyId,omitempty"`
	Groups     []string `json:"groups,omitempty"`
	HasAccount bool     `json:"hasAccount"`

	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
}

// FullName joins the name parts, tolerating either being empty.
func (c *Customer) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}
