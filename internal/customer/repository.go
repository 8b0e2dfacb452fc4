package customer

import (
	"context"
	"strings"

	"github.com/changhyeonkim/sales-crm/internal/model"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type CustomerRepository struct{}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

func (r *CustomerRepository) scope(ctx context.Context, db *gorm.DB, ownerID uint32) *gorm.DB {
	return db.WithContext(ctx).Model(&model.Customer{}).Where("owner_id = ?", ownerID)
}

// IsNameTaken reports whether another customer of the owner already uses name.
// exceptID excludes the row being edited; pass "" on insert.
func (r *CustomerRepository) IsNameTaken(ctx context.Context, db *gorm.DB, ownerID uint32, name, exceptID string) (bool, error) {
	query := r.scope(ctx, db, ownerID).Where("name = ?", name)
	if exceptID != "" {
		query = query.Where("customer_id <> ?", exceptID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CustomerRepository) Create(ctx context.Context, db *gorm.DB, customer *model.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

// Update writes every editable column, empty strings included
func (r *CustomerRepository) Update(ctx context.Context, db *gorm.DB, customer *model.Customer) error {
	return db.WithContext(ctx).
		Model(customer).
		Select("name", "birthday", "age",
			"occupation", "employment_history", "place_of_birth",
			"hobbies", "family_members", "needs", "updated_at", "updated_by").
		Updates(customer).Error
}

func (r *CustomerRepository) FindByID(ctx context.Context, db *gorm.DB, ownerID uint32, customerID string) (*model.Customer, error) {
	var customer model.Customer
	err := db.WithContext(ctx).
		Where("owner_id = ? AND customer_id = ?", ownerID, customerID).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns one page ordered by name together with the filtered total
func (r *CustomerRepository) List(ctx context.Context, db *gorm.DB, ownerID uint32, q string, offset, limit int) ([]model.Customer, int64, error) {
	query := r.scope(ctx, db, ownerID)
	if q = strings.TrimSpace(q); q != "" {
		pattern := "%" + likeEscaper.Replace(q) + "%"
		query = query.Where(
			`(name LIKE ? ESCAPE '\' OR occupation LIKE ? ESCAPE '\' OR needs LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern,
		)
	}
	// reusable for both Count and Find
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []model.Customer
	err := query.Order("name ASC").Offset(offset).Limit(limit).Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// Each streams the owner's customers ordered by name
func (r *CustomerRepository) Each(ctx context.Context, db *gorm.DB, ownerID uint32, fn func(*model.Customer) error) error {
	query := r.scope(ctx, db, ownerID).Order("name ASC")

	rows, err := query.Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var customer model.Customer
		if err := db.ScanRows(rows, &customer); err != nil {
			return err
		}
		if err := fn(&customer); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (r *CustomerRepository) Delete(ctx context.Context, db *gorm.DB, ownerID uint32, customerID string) (int64, error) {
	result := db.WithContext(ctx).
		Where("owner_id = ? AND customer_id = ?", ownerID, customerID).
		Delete(&model.Customer{})
	return result.RowsAffected, result.Error
}
