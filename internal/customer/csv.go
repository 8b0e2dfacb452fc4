package customer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/changhyeonkim/sales-crm/internal/model"
)

// CSV column names
const (
	colCustomerID        = "customer_id"
	colName              = "name"
	colBirthday          = "birthday"
	colAge               = "age"
	colOccupation        = "occupation"
	colEmploymentHistory = "employment_history"
	colPlaceOfBirth      = "place_of_birth"
	colHobbies           = "hobbies"
	colFamilyMembers     = "family_members"
	colNeeds             = "needs"
)

// CSVHeader is the fixed export column order (same as the table)
var CSVHeader = []string{
	colCustomerID, colName, colBirthday, colAge,
	colOccupation, colEmploymentHistory, colPlaceOfBirth,
	colHobbies, colFamilyMembers, colNeeds,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// rowReader decodes import rows by header name.
// customer_id and age columns are ignored: both are derived.
type rowReader struct {
	r     *csv.Reader
	index map[string]int
}

func newRowReader(r io.Reader) (*rowReader, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("빈 CSV 파일: %w", ErrInvalidCSV)
		}
		return nil, fmt.Errorf("CSV 헤더 읽기 실패: %v: %w", err, ErrInvalidCSV)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, dup := index[key]; !dup {
			index[key] = i
		}
	}

	for _, required := range []string{colName, colBirthday} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("필수 열 누락 column=%s: %w", required, ErrInvalidCSV)
		}
	}

	return &rowReader{r: cr, index: index}, nil
}

// Next returns the next row and its line number; io.EOF at the end.
func (rr *rowReader) Next() (CustomerRequest, int, error) {
	record, err := rr.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return CustomerRequest{}, 0, io.EOF
		}
		return CustomerRequest{}, 0, fmt.Errorf("CSV 파싱 실패: %v: %w", err, ErrInvalidCSV)
	}
	line, _ := rr.r.FieldPos(0)

	get := func(col string) string {
		i, ok := rr.index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	return CustomerRequest{
		Name:              strings.TrimSpace(get(colName)),
		Birthday:          strings.TrimSpace(get(colBirthday)),
		Occupation:        get(colOccupation),
		EmploymentHistory: get(colEmploymentHistory),
		PlaceOfBirth:      get(colPlaceOfBirth),
		Hobbies:           get(colHobbies),
		FamilyMembers:     get(colFamilyMembers),
		Needs:             get(colNeeds),
	}, line, nil
}

// csvRecord renders one customer in CSVHeader order with the age as of today
func csvRecord(c *model.Customer, today time.Time) []string {
	return []string{
		c.CustomerID,
		c.Name,
		c.Birthday,
		strconv.Itoa(c.CurrentAge(today)),
		c.Occupation,
		c.EmploymentHistory,
		c.PlaceOfBirth,
		c.Hobbies,
		c.FamilyMembers,
		c.Needs,
	}
}
