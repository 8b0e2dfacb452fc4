package customer

import "time"

// CustomerRequest is the editable part of a customer, shared by the JSON API,
// the browser form and CSV rows.
type CustomerRequest struct {
	Name              string `json:"name" form:"name" binding:"required,max=100"`
	Birthday          string `json:"birthday" form:"birthday" binding:"required,birthday"`
	Occupation        string `json:"occupation" form:"occupation" binding:"max=200"`
	EmploymentHistory string `json:"employmentHistory" form:"employmentHistory" binding:"max=2000"`
	PlaceOfBirth      string `json:"placeOfBirth" form:"placeOfBirth" binding:"max=200"`
	Hobbies           string `json:"hobbies" form:"hobbies" binding:"max=500"`
	FamilyMembers     string `json:"familyMembers" form:"familyMembers" binding:"max=500"`
	Needs             string `json:"needs" form:"needs" binding:"max=2000"`
}

type CustomerResponse struct {
	CustomerID        string    `json:"customerId"`
	Name              string    `json:"name"`
	Birthday          string    `json:"birthday"`
	Age               int       `json:"age"`
	Occupation        string    `json:"occupation"`
	EmploymentHistory string    `json:"employmentHistory"`
	PlaceOfBirth      string    `json:"placeOfBirth"`
	Hobbies           string    `json:"hobbies"`
	FamilyMembers     string    `json:"familyMembers"`
	Needs             string    `json:"needs"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// ListQuery: q filters by substring of name, occupation or needs
type ListQuery struct {
	Q    string `form:"q" binding:"max=100"`
	Page int    `form:"page" binding:"omitempty,min=1"`
	Size int    `form:"size" binding:"omitempty,min=1"`
}

type ListResponse struct {
	Items []CustomerResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

// HasNext reports whether another page follows
func (l *ListResponse) HasNext() bool {
	return int64(l.Page*l.Size) < l.Total
}

type ImportRowError struct {
	Row    int    `json:"row"` // 1-based line number in the file
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Total      int              `json:"total"`
	Imported   int              `json:"imported"`
	Duplicates []string         `json:"duplicates"`
	Failed     []ImportRowError `json:"failed"`
}
