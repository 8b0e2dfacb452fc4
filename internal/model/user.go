package model

// User is a sales representative who owns a private customer book
type User struct {
	// Primary key - SQLite INTEGER PRIMARY KEY (auto-increment)
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	// Core fields
	LoginID  string `gorm:"column:login_id;type:varchar(30);not null;uniqueIndex:idx_user_login_id"` // 로그인 ID (unique)
	Name     string `gorm:"column:name;type:varchar(100);not null"`                                  // 이름
	Password string `gorm:"column:password;type:varchar(60);not null"`                               // 암호화된 비밀번호

	BaseEntity
}

// TableName specifies the table name for User
func (*User) TableName() string {
	return "users"
}

// NewUser creates a new User instance
// password는 service 계층에서 해시된 값이어야 한다
func NewUser(loginID, name, password string) *User {
	return &User{
		LoginID:  loginID,
		Name:     name,
		Password: password,
	}
}
