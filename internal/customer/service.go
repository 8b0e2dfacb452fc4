package customer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/changhyeonkim/sales-crm/internal/config"
	"github.com/changhyeonkim/sales-crm/internal/model"
	"github.com/changhyeonkim/sales-crm/internal/shared/database"
	sharedError "github.com/changhyeonkim/sales-crm/internal/shared/error"
	"github.com/changhyeonkim/sales-crm/internal/shared/logger"
	"github.com/changhyeonkim/sales-crm/internal/shared/validator"
	"gorm.io/gorm"
)

const maxNameLength = 100

// detailLimits mirrors the max= binding tags on CustomerRequest
var detailLimits = []struct {
	label string
	max   int
	value func(r *CustomerRequest) string
}{
	{"직업", 200, func(r *CustomerRequest) string { return r.Occupation }},
	{"경력", 2000, func(r *CustomerRequest) string { return r.EmploymentHistory }},
	{"출신지", 200, func(r *CustomerRequest) string { return r.PlaceOfBirth }},
	{"취미", 500, func(r *CustomerRequest) string { return r.Hobbies }},
	{"가족 구성", 500, func(r *CustomerRequest) string { return r.FamilyMembers }},
	{"니즈", 2000, func(r *CustomerRequest) string { return r.Needs }},
}

type CustomerService struct {
	db                 *gorm.DB
	customerRepository *CustomerRepository
	cfg                config.CustomerConfig
	now                func() time.Time
}

func NewCustomerService(db *gorm.DB, customerRepository *CustomerRepository, cfg config.CustomerConfig) *CustomerService {
	return &CustomerService{
		db:                 db,
		customerRepository: customerRepository,
		cfg:                cfg,
		now:                time.Now,
	}
}

// WithClock replaces the clock used for age calculation
func (s *CustomerService) WithClock(now func() time.Time) *CustomerService {
	s.now = now
	return s
}

func (s *CustomerService) Create(ctx context.Context, ownerID uint32, request *CustomerRequest) (*CustomerResponse, error) {
	resp, err := s.create(ctx, ownerID, request)
	customerWrites.WithLabelValues("create", resultLabel(err)).Inc()
	return resp, err
}

func (s *CustomerService) create(ctx context.Context, ownerID uint32, request *CustomerRequest) (*CustomerResponse, error) {
	log := logger.FromContext(ctx)
	today := s.now()

	req, birthday, err := normalize(request, today)
	if err != nil {
		return nil, err
	}

	customer := model.NewCustomer(ownerID, req.Name, birthday, req.details(), today)
	customer.SetCreatedBy(ownerID)

	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		taken, err := s.customerRepository.IsNameTaken(ctx, tx, ownerID, customer.Name, "")
		if err != nil {
			return fmt.Errorf("고객 중복 확인 실패: %w", err)
		}
		if taken {
			return fmt.Errorf("중복 고객 name=%s: %w", logger.MaskName(customer.Name), ErrCustomerAlreadyExists)
		}

		// a renamed customer still holds the id derived from its first name
		holder, err := s.customerRepository.FindByID(ctx, tx, ownerID, customer.CustomerID)
		switch {
		case err == nil:
			return fmt.Errorf("고객 ID 사용 중 customerID=%s holder=%s: %w",
				customer.CustomerID, logger.MaskName(holder.Name), ErrCustomerIDTaken)
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("고객 ID 확인 실패: %w", err)
		}

		if err := s.customerRepository.Create(ctx, tx, customer); err != nil {
			// UNIQUE(owner_id, name) or a customer_id hash collision
			if database.IsDuplicateKey(err) {
				return fmt.Errorf("중복 고객 name=%s: %w", logger.MaskName(customer.Name), ErrCustomerAlreadyExists)
			}
			return fmt.Errorf("고객 등록 실패: %w", err)
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrCustomerAlreadyExists):
			log.Warn("이미 등록된 고객", "name", logger.MaskName(customer.Name))
		case errors.Is(err, ErrCustomerIDTaken):
			log.Warn("고객 ID 사용 중", "customer_id", customer.CustomerID)
		}
		return nil, err
	}

	log.Info("고객 등록 완료", "customer_id", customer.CustomerID)
	return toResponse(customer, today), nil
}

// Update rewrites every field of an existing customer. customer_id never changes.
func (s *CustomerService) Update(ctx context.Context, ownerID uint32, customerID string, request *CustomerRequest) (*CustomerResponse, error) {
	resp, err := s.update(ctx, ownerID, customerID, request)
	customerWrites.WithLabelValues("update", resultLabel(err)).Inc()
	return resp, err
}

func (s *CustomerService) update(ctx context.Context, ownerID uint32, customerID string, request *CustomerRequest) (*CustomerResponse, error) {
	log := logger.FromContext(ctx)
	today := s.now()

	req, birthday, err := normalize(request, today)
	if err != nil {
		return nil, err
	}

	var customer *model.Customer
	err = database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		found, err := s.customerRepository.FindByID(ctx, tx, ownerID, customerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("고객을 찾을 수 없습니다 customerID=%s %w", customerID, ErrCustomerNotFound)
			}
			return fmt.Errorf("고객 조회 실패: %w", err)
		}

		if found.Name != req.Name {
			taken, err := s.customerRepository.IsNameTaken(ctx, tx, ownerID, req.Name, customerID)
			if err != nil {
				return fmt.Errorf("고객 중복 확인 실패: %w", err)
			}
			if taken {
				return fmt.Errorf("중복 고객 name=%s: %w", logger.MaskName(req.Name), ErrCustomerAlreadyExists)
			}
		}

		found.Apply(req.Name, birthday, req.details(), today)
		found.SetUpdatedBy(ownerID)

		if err := s.customerRepository.Update(ctx, tx, found); err != nil {
			if database.IsDuplicateKey(err) {
				return fmt.Errorf("중복 고객 name=%s: %w", logger.MaskName(req.Name), ErrCustomerAlreadyExists)
			}
			return fmt.Errorf("고객 수정 실패: %w", err)
		}
		customer = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("고객 수정 완료", "customer_id", customerID)
	return toResponse(customer, today), nil
}

func (s *CustomerService) Get(ctx context.Context, ownerID uint32, customerID string) (*CustomerResponse, error) {
	customer, err := s.customerRepository.FindByID(ctx, s.db, ownerID, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("고객을 찾을 수 없습니다 customerID=%s %w", customerID, ErrCustomerNotFound)
		}
		return nil, fmt.Errorf("고객 조회 실패: %w", err)
	}
	return toResponse(customer, s.now()), nil
}

func (s *CustomerService) List(ctx context.Context, ownerID uint32, query *ListQuery) (*ListResponse, error) {
	page, size := query.Page, query.Size
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = s.cfg.PageSize
	}
	if size > s.cfg.MaxPageSize {
		size = s.cfg.MaxPageSize
	}

	customers, total, err := s.customerRepository.List(ctx, s.db, ownerID, query.Q, (page-1)*size, size)
	if err != nil {
		return nil, fmt.Errorf("고객 목록 조회 실패: %w", err)
	}

	today := s.now()
	items := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		items = append(items, *toResponse(&customers[i], today))
	}

	return &ListResponse{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
	}, nil
}

func (s *CustomerService) Delete(ctx context.Context, ownerID uint32, customerID string) error {
	affected, err := s.customerRepository.Delete(ctx, s.db, ownerID, customerID)
	if err == nil && affected == 0 {
		err = fmt.Errorf("고객을 찾을 수 없습니다 customerID=%s %w", customerID, ErrCustomerNotFound)
	}
	customerWrites.WithLabelValues("delete", resultLabel(err)).Inc()
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return err
		}
		return fmt.Errorf("고객 삭제 실패: %w", err)
	}

	logger.FromContext(ctx).Info("고객 삭제 완료", "customer_id", customerID)
	return nil
}

// Import inserts one customer per CSV row. Rows are independent: a duplicate
// or invalid row is reported and the rest still go in.
// A malformed header or CSV syntax error stops the import; rows already
// inserted stay and the partial result is returned with the error.
func (s *CustomerService) Import(ctx context.Context, ownerID uint32, r io.Reader) (*ImportResult, error) {
	log := logger.FromContext(ctx)

	rows, err := newRowReader(r)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Duplicates: []string{},
		Failed:     []ImportRowError{},
	}

	for {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("CSV 가져오기 중단: %w", err)
		}

		req, line, err := rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Warn("CSV 가져오기 중단", "error", err, "imported", result.Imported)
			return result, err
		}
		result.Total++

		_, err = s.Create(ctx, ownerID, &req)
		switch {
		case err == nil:
			result.Imported++
			importRows.WithLabelValues("imported").Inc()
		case errors.Is(err, ErrCustomerAlreadyExists):
			result.Duplicates = append(result.Duplicates, req.Name)
			importRows.WithLabelValues("duplicate").Inc()
		case errors.Is(err, ErrInvalidCustomer), errors.Is(err, ErrCustomerIDTaken):
			result.Failed = append(result.Failed, ImportRowError{Row: line, Name: req.Name, Reason: reason(err)})
			importRows.WithLabelValues("failed").Inc()
		default:
			return result, fmt.Errorf("CSV %d행 등록 실패: %w", line, err)
		}
	}

	log.Info("CSV 가져오기 완료",
		"total", result.Total,
		"imported", result.Imported,
		"duplicates", len(result.Duplicates),
		"failed", len(result.Failed),
	)
	return result, nil
}

// Export writes the owner's customers in CSVHeader order and returns the row count
func (s *CustomerService) Export(ctx context.Context, ownerID uint32, w io.Writer) (int, error) {
	today := s.now()
	cw := csv.NewWriter(w)

	if err := cw.Write(CSVHeader); err != nil {
		return 0, fmt.Errorf("CSV 헤더 쓰기 실패: %w", err)
	}

	count := 0
	err := s.customerRepository.Each(ctx, s.db, ownerID, func(c *model.Customer) error {
		count++
		return cw.Write(csvRecord(c, today))
	})
	if err != nil {
		return count, fmt.Errorf("고객 내보내기 실패: %w", err)
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return count, fmt.Errorf("CSV 쓰기 실패: %w", err)
	}

	logger.FromContext(ctx).Info("CSV 내보내기 완료", "rows", count)
	return count, nil
}

// invalidCustomerError keeps the user-facing reason next to the sentinel
type invalidCustomerError struct {
	reason string
}

func (e *invalidCustomerError) Error() string { return e.reason }

func (e *invalidCustomerError) Unwrap() error { return ErrInvalidCustomer }

func reason(err error) string {
	var ice *invalidCustomerError
	if errors.As(err, &ice) {
		return ice.reason
	}
	if errors.Is(err, ErrCustomerIDTaken) {
		return sharedError.Resolve(err).Message
	}
	return err.Error()
}

// normalize trims the name and re-checks what gin binding checks, since CSV
// and CLI input never pass through binding.
func normalize(request *CustomerRequest, today time.Time) (*CustomerRequest, time.Time, error) {
	req := *request
	req.Name = strings.TrimSpace(req.Name)
	req.Birthday = strings.TrimSpace(req.Birthday)

	switch {
	case req.Name == "":
		return nil, time.Time{}, &invalidCustomerError{reason: "이름을 입력해 주세요."}
	case utf8.RuneCountInString(req.Name) > maxNameLength:
		return nil, time.Time{}, &invalidCustomerError{reason: fmt.Sprintf("이름은 최대 %d자까지 입력 가능합니다.", maxNameLength)}
	case !validator.IsValidBirthday(req.Birthday, today):
		return nil, time.Time{}, &invalidCustomerError{reason: "생년월일은 1900-01-01 이후, 오늘 이전의 YYYY-MM-DD 형식이어야 합니다."}
	}

	for _, limit := range detailLimits {
		if utf8.RuneCountInString(limit.value(&req)) > limit.max {
			return nil, time.Time{}, &invalidCustomerError{reason: fmt.Sprintf("%s은(는) 최대 %d자까지 입력 가능합니다.", limit.label, limit.max)}
		}
	}

	birthday, err := model.ParseBirthday(req.Birthday)
	if err != nil {
		return nil, time.Time{}, &invalidCustomerError{reason: "생년월일 형식이 올바르지 않습니다."}
	}
	return &req, birthday, nil
}

func (r *CustomerRequest) details() model.CustomerDetails {
	return model.CustomerDetails{
		Occupation:        r.Occupation,
		EmploymentHistory: r.EmploymentHistory,
		PlaceOfBirth:      r.PlaceOfBirth,
		Hobbies:           r.Hobbies,
		FamilyMembers:     r.FamilyMembers,
		Needs:             r.Needs,
	}
}

func toResponse(c *model.Customer, today time.Time) *CustomerResponse {
	return &CustomerResponse{
		CustomerID:        c.CustomerID,
		Name:              c.Name,
		Birthday:          c.Birthday,
		Age:               c.CurrentAge(today),
		Occupation:        c.Occupation,
		EmploymentHistory: c.EmploymentHistory,
		PlaceOfBirth:      c.PlaceOfBirth,
		Hobbies:           c.Hobbies,
		FamilyMembers:     c.FamilyMembers,
		Needs:             c.Needs,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
