package services

import (
	"context"
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/yeremiapane/user-admin/models"
	"gorm.io/gorm"
)

// UserInput carries the mutable fields of a user as submitted by a form.
type UserInput struct {
	Name  string `form:"name" validate:"required"`
	Email string `form:"email" validate:"required"`
	Role  string `form:"role" validate:"required"`
}

// UserService is the record store for users. It owns no state besides the DB handle.
type UserService struct {
	DB       *gorm.DB
	validate *validator.Validate
}

func NewUserService(db *gorm.DB) *UserService {
	v := validator.New()
	// report fields by their form name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return &UserService{DB: db, validate: v}
}

// List returns every user in primary key order.
func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users := []models.User{}
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&users).Error; err != nil {
		return nil, &StoreError{Op: "list users", Err: err}
	}
	return users, nil
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*models.User, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	user := models.User{Name: in.Name, Email: in.Email, Role: in.Role}
	if err := s.DB.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, &StoreError{Op: "create user", Err: err}
	}
	return &user, nil
}

// Get returns ErrNotFound when no row has the id.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &StoreError{Op: "get user", Err: err}
	}
	return &user, nil
}

// Update overwrites name, email and role of an existing user. Concurrent updates are last-writer-wins.
func (s *UserService) Update(ctx context.Context, id uint, in UserInput) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.check(in); err != nil {
		return nil, err
	}

	err = s.DB.WithContext(ctx).
		Model(user).
		Select("name", "email", "role").
		Updates(models.User{Name: in.Name, Email: in.Email, Role: in.Role}).Error
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, &StoreError{Op: "update user", Err: err}
	}

	user.Name, user.Email, user.Role = in.Name, in.Email, in.Role
	return user, nil
}

// Delete removes the user if present. A missing id is not an error.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.DB.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return &StoreError{Op: "delete user", Err: err}
	}
	return nil
}

// check only tests presence; whitespace-only values are accepted.
func (s *UserService) check(in UserInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &StoreError{Op: "validate user", Err: err}
	}
	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.Fields = append(verr.Fields, fe.Field())
	}
	return verr
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// untranslated driver errors
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
