package model

import (
	"crypto/md5"
	"encoding/hex"
	"time"
)

const (
	// BirthdayLayout is the storage and wire format of a birthday
	BirthdayLayout = "2006-01-02"

	customerIDLength = 12
)

// CustomerDetails holds the free-text profile columns
type CustomerDetails struct {
	Occupation        string `gorm:"column:occupation;type:text"`         // 직업
	EmploymentHistory string `gorm:"column:employment_history;type:text"` // 경력
	PlaceOfBirth      string `gorm:"column:place_of_birth;type:text"`     // 출생지
	Hobbies           string `gorm:"column:hobbies;type:text"`            // 취미
	FamilyMembers     string `gorm:"column:family_members;type:text"`     // 가족 구성
	Needs             string `gorm:"column:needs;type:text"`              // 니즈
}

// Customer is one row of a user's customer book.
// CustomerID is derived from Name and never changes after insert.
type Customer struct {
	OwnerID    uint32 `gorm:"column:owner_id;primaryKey;autoIncrement:false;uniqueIndex:idx_customer_owner_name,priority:1"`
	CustomerID string `gorm:"column:customer_id;primaryKey;type:varchar(12)"`

	Name     string `gorm:"column:name;type:varchar(100);not null;uniqueIndex:idx_customer_owner_name,priority:2"`
	Birthday string `gorm:"column:birthday;type:varchar(10);not null"` // YYYY-MM-DD
	Age      int    `gorm:"column:age;not null"`                       // 저장 시점 기준 나이

	CustomerDetails

	BaseEntity
}

// TableName keeps the historical table name
func (*Customer) TableName() string {
	return "customer_table"
}

// NewCustomer creates a Customer with its derived id and age
func NewCustomer(ownerID uint32, name string, birthday time.Time, details CustomerDetails, today time.Time) *Customer {
	c := &Customer{
		OwnerID:    ownerID,
		CustomerID: DeriveCustomerID(name),
	}
	c.Apply(name, birthday, details, today)
	return c
}

// Apply overwrites every editable column and refreshes the stored age.
// CustomerID is left untouched.
func (c *Customer) Apply(name string, birthday time.Time, details CustomerDetails, today time.Time) {
	c.Name = name
	c.Birthday = birthday.Format(BirthdayLayout)
	c.Age = CalculateAge(birthday, today)
	c.CustomerDetails = details
}

// CurrentAge recomputes the age from the stored birthday.
// Falls back to the stored age when the birthday cannot be parsed.
func (c *Customer) CurrentAge(today time.Time) int {
	birthday, err := ParseBirthday(c.Birthday)
	if err != nil {
		return c.Age
	}
	return CalculateAge(birthday, today)
}

// DeriveCustomerID returns the first 12 hex characters of md5(name)
func DeriveCustomerID(name string) string {
	sum := md5.Sum([]byte(name))
	return hex.EncodeToString(sum[:])[:customerIDLength]
}

// CalculateAge returns completed years between birthday and today.
// A Feb 29 birthday counts as passed from Mar 1 in non-leap years.
func CalculateAge(birthday, today time.Time) int {
	age := today.Year() - birthday.Year()
	if today.Month() < birthday.Month() ||
		(today.Month() == birthday.Month() && today.Day() < birthday.Day()) {
		age--
	}
	return age
}

// ParseBirthday parses a YYYY-MM-DD string
func ParseBirthday(s string) (time.Time, error) {
	return time.Parse(BirthdayLayout, s)
}
