package web

import (
	"embed"
	"html/template"

	"github.com/changhyeonkim/sales-crm/internal/customer"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded pages. Each page is registered under its file name.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// flash messages carried across a redirect as ?notice=<key>
var notices = map[string]string{
	"created":  "고객을 등록했습니다.",
	"updated":  "고객 정보를 수정했습니다.",
	"deleted":  "고객을 삭제했습니다.",
	"signup":   "가입이 완료되었습니다. 로그인해 주세요.",
	"notfound": "고객 정보를 찾을 수 없습니다.",
}

type layout struct {
	Title   string
	LoginID string
	Notice  string
	Warning string
	Error   string
}

type authPage struct {
	layout
	LoginIDValue string
	Name         string
}

type listPage struct {
	layout
	Query    string
	List     *customer.ListResponse
	PrevPage int
	NextPage int
	Form     customer.CustomerRequest
	Import   *customer.ImportResult
}

type editPage struct {
	layout
	CustomerID string
	Age        int
	Form       customer.CustomerRequest
}

func formOf(r *customer.CustomerResponse) customer.CustomerRequest {
	return customer.CustomerRequest{
		Name:              r.Name,
		Birthday:          r.Birthday,
		Occupation:        r.Occupation,
		EmploymentHistory: r.EmploymentHistory,
		PlaceOfBirth:      r.PlaceOfBirth,
		Hobbies:           r.Hobbies,
		FamilyMembers:     r.FamilyMembers,
		Needs:             r.Needs,
	}
}
