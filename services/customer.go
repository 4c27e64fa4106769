package services

import (
	"errors"
	"fmt"
	"strings"

	"auto-control-backend/models"

	"gorm.io/gorm"
)

// CustomerService owns customer records and the delete guard that keeps
// a customer alive while cars or notes still reference it.
type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

type CustomerInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

type CustomerListParams struct {
	Page           int
	ItemsPerPage   int
	Name           string
	OrderBy        string
	OrderDirection string
}

type CustomerPage struct {
	Data       []models.Customer `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

var customerOrderColumns = map[string]string{
	"name":      "name",
	"email":     "email",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

func (s *CustomerService) Create(input CustomerInput) (*models.Customer, error) {
	customer := models.Customer{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	if err := s.db.Create(&customer).Error; err != nil {
		return nil, &StoreError{Op: "create customer", Err: err}
	}
	return &customer, nil
}

func (s *CustomerService) Update(id string, input CustomerInput) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "customer", Id: id}
			}
			return &StoreError{Op: "load customer", Err: err}
		}
		updates := map[string]any{
			"name":  input.Name,
			"email": input.Email,
			"phone": input.Phone,
		}
		if err := tx.Model(&customer).Updates(updates).Error; err != nil {
			return &StoreError{Op: "update customer", Err: err}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) Get(id string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.
		Preload("Cars").
		Preload("Notes").
		First(&customer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Entity: "customer", Id: id}
		}
		return nil, &StoreError{Op: "load customer", Err: err}
	}
	return &customer, nil
}

func (s *CustomerService) List(params CustomerListParams) (*CustomerPage, error) {
	page, itemsPerPage := normalizePaging(params.Page, params.ItemsPerPage)

	q := s.db.Model(&models.Customer{})
	if params.Name != "" {
		// Case-insensitive contains; LOWER/LIKE instead of ILIKE so the
		// same query runs on the sqlite test store.
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Name)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, &StoreError{Op: "count customers", Err: err}
	}

	var customers []models.Customer
	err := q.
		Order(orderClause(customerOrderColumns, params.OrderBy, params.OrderDirection)).
		Offset((page - 1) * itemsPerPage).
		Limit(itemsPerPage).
		Find(&customers).Error
	if err != nil {
		return nil, &StoreError{Op: "list customers", Err: err}
	}

	return &CustomerPage{
		Data:       customers,
		Pagination: paginate(page, itemsPerPage, total),
	}, nil
}

// Delete refuses while the customer still has cars or notes registered.
// Existence check, dependent counts, and the delete itself share one
// transaction so a concurrent car/note creation cannot slip in between
// the check and the delete.
func (s *CustomerService) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Entity: "customer", Id: id}
			}
			return &StoreError{Op: "load customer", Err: err}
		}

		var carsCount, notesCount int64
		if err := tx.Model(&models.Car{}).Where("customer_id = ?", id).Count(&carsCount).Error; err != nil {
			return &StoreError{Op: "count customer cars", Err: err}
		}
		if err := tx.Model(&models.Note{}).Where("customer_id = ?", id).Count(&notesCount).Error; err != nil {
			return &StoreError{Op: "count customer notes", Err: err}
		}

		if carsCount > 0 || notesCount > 0 {
			return &ConflictError{Message: customerDeleteRefusal(customer.Name, carsCount, notesCount)}
		}

		if err := tx.Delete(&customer).Error; err != nil {
			return &StoreError{Op: "delete customer", Err: err}
		}
		return nil
	})
}

// customerDeleteRefusal renders the user-facing refusal. Each clause is
// pluralized on its own count, the clauses are joined with "e" only
// when both are nonzero, and the trailing participle agrees with the
// combined count.
func customerDeleteRefusal(name string, carsCount, notesCount int64) string {
	var parts []string
	if carsCount > 0 {
		parts = append(parts, fmt.Sprintf("%d veículo%s", carsCount, plural(carsCount)))
	}
	if notesCount > 0 {
		parts = append(parts, fmt.Sprintf("%d nota%s", notesCount, plural(notesCount)))
	}
	joined := parts[0]
	if len(parts) == 2 {
		joined = parts[0] + " e " + parts[1]
	}
	return fmt.Sprintf("Não é possível excluir %s. O cliente possui %s cadastrado%s.",
		name, joined, plural(carsCount+notesCount))
}

func plural(n int64) string {
	if n > 1 {
		return "s"
	}
	return ""
}
