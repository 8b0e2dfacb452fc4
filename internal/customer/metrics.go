package customer

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	customerWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_customer_writes_total",
		Help: "Customer create/update/delete attempts by result.",
	}, []string{"op", "result"})

	importRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_customer_import_rows_total",
		Help: "CSV import rows by outcome.",
	}, []string{"result"})
)

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrCustomerAlreadyExists):
		return "duplicate"
	case errors.Is(err, ErrCustomerIDTaken):
		return "id_taken"
	case errors.Is(err, ErrCustomerNotFound):
		return "not_found"
	case errors.Is(err, ErrInvalidCustomer):
		return "invalid"
	default:
		return "error"
	}
}
