package locations

// CreateLocationRequest is the admin payload for adding a chamber site
type CreateLocationRequest struct {
	Slug       string `json:"slug" binding:"required,min=2,max=50"`
	Name       string `json:"name" binding:"required,min=2,max=100"`
	City       string `json:"city"`
	State      string `json:"state"`
	Address    string `json:"address"`
	ChamberCap int    `json:"chamber_capacity" binding:"omitempty,min=1,max=12"`
	Active     bool   `json:"active"`
	ComingSoon bool   `json:"coming_soon"`
}
