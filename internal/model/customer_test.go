package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseBirthday(s)
	require.NoError(t, err)
	return d
}

func TestCalculateAge(t *testing.T) {
	testCases := []struct {
		name     string
		birthday string
		today    string
		expected int
	}{
		{"birthday already passed", "1990-03-15", "2024-06-01", 34},
		{"birthday is today", "1990-06-01", "2024-06-01", 34},
		{"birthday later this year", "1990-12-31", "2024-06-01", 33},
		{"birthday later this month", "1990-06-02", "2024-06-01", 33},
		{"born today", "2024-06-01", "2024-06-01", 0},
		{"leap day on leap year", "2000-02-29", "2024-02-29", 24},
		{"leap day, non-leap year, Feb 28", "2000-02-29", "2023-02-28", 22},
		{"leap day, non-leap year, Mar 1", "2000-02-29", "2023-03-01", 23},
		{"today is leap day", "1990-03-01", "2024-02-29", 33},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// When
			age := CalculateAge(date(t, tc.birthday), date(t, tc.today))

			// Then
			assert.Equal(t, tc.expected, age)
		})
	}
}

func TestDeriveCustomerID(t *testing.T) {
	id := DeriveCustomerID("山田太郎")

	assert.Len(t, id, 12)
	assert.Equal(t, id, DeriveCustomerID("山田太郎"))
	assert.NotEqual(t, id, DeriveCustomerID("山田花子"))

	// md5("") = d41d8cd98f00b204e9800998ecf8427e
	assert.Equal(t, "d41d8cd98f00", DeriveCustomerID(""))
	// md5("abc") = 900150983cd24fb0d6963f7d28e17f72
	assert.Equal(t, "900150983cd2", DeriveCustomerID("abc"))
}

func TestNewCustomer(t *testing.T) {
	today := date(t, "2024-06-01")
	details := CustomerDetails{Occupation: "engineer", Needs: "insurance"}

	c := NewCustomer(7, "abc", date(t, "1990-12-31"), details, today)

	assert.Equal(t, uint32(7), c.OwnerID)
	assert.Equal(t, "900150983cd2", c.CustomerID)
	assert.Equal(t, "1990-12-31", c.Birthday)
	assert.Equal(t, 33, c.Age)
	assert.Equal(t, "engineer", c.Occupation)
	assert.Equal(t, "insurance", c.Needs)
}

func TestCustomer_ApplyKeepsID(t *testing.T) {
	today := date(t, "2024-06-01")
	c := NewCustomer(1, "abc", date(t, "1990-01-01"), CustomerDetails{}, today)

	c.Apply("renamed", date(t, "2000-07-01"), CustomerDetails{Hobbies: "golf"}, today)

	assert.Equal(t, "900150983cd2", c.CustomerID)
	assert.Equal(t, "renamed", c.Name)
	assert.Equal(t, 23, c.Age)
	assert.Equal(t, "golf", c.Hobbies)
}

func TestCustomer_CurrentAge(t *testing.T) {
	c := &Customer{Birthday: "1990-06-02", Age: 10}

	assert.Equal(t, 33, c.CurrentAge(date(t, "2024-06-01")))
	assert.Equal(t, 34, c.CurrentAge(date(t, "2024-06-02")))

	broken := &Customer{Birthday: "not-a-date", Age: 10}
	assert.Equal(t, 10, broken.CurrentAge(date(t, "2024-06-02")))
}
