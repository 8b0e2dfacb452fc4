package customer

import (
	"net/http"

	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
)

const (
	customerNotFound      = "CUSTOMER_NOT_FOUND"      // errInfo
	customerAlreadyExists = "CUSTOMER_ALREADY_EXISTS" // errInfo
	invalidCSV            = "INVALID_CSV"             // errInfo
	importTooLarge        = "IMPORT_TOO_LARGE"        // errInfo
	invalidCustomer       = "INVALID_CUSTOMER"        // errInfo
	customerIDTaken       = "CUSTOMER_ID_TAKEN"       // errInfo
)

var (
	ErrCustomerNotFound      = sharedError.NewDomainError(customerNotFound)
	ErrCustomerAlreadyExists = sharedError.NewDomainError(customerAlreadyExists)
	ErrInvalidCSV            = sharedError.NewDomainError(invalidCSV)
	ErrImportTooLarge        = sharedError.NewDomainError(importTooLarge)
	ErrInvalidCustomer       = sharedError.NewDomainError(invalidCustomer)
	ErrCustomerIDTaken       = sharedError.NewDomainError(customerIDTaken)
)

func init() {
	sharedError.RegisterDomainErrorResponse(customerNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "CUSTOMER-001",
		Message: "고객 정보를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(customerAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "CUSTOMER-002",
		Message: "이미 등록된 고객입니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidCSV, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "CUSTOMER-003",
		Message: "CSV 형식이 올바르지 않습니다. name, birthday 열이 필요합니다.",
	})

	sharedError.RegisterDomainErrorResponse(importTooLarge, sharedError.ErrorResponse{
		Status:  http.StatusRequestEntityTooLarge,
		Code:    "CUSTOMER-004",
		Message: "업로드 파일이 너무 큽니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidCustomer, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "CUSTOMER-005",
		Message: "고객 정보가 올바르지 않습니다.",
	})

	// customer_id는 최초 등록 이름에서 만들어지고 이름을 바꿔도 유지된다
	sharedError.RegisterDomainErrorResponse(customerIDTaken, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "CUSTOMER-006",
		Message: "같은 고객 ID를 쓰는 고객이 이미 있습니다. 이 이름으로 등록했다가 이름을 바꾼 고객이 있는지 확인해 주세요.",
	})
}
