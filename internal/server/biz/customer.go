package biz

import (
	"context"
	"strings"

	"go.uber.org/fx"

	"github.com/fulexo/platform/internal/errs"
	"github.com/fulexo/platform/internal/objects"
	"github.com/fulexo/platform/internal/store"
)

type CustomerServiceParams struct {
	fx.In

	Store *store.Store
}

func NewCustomerService(params CustomerServiceParams) *CustomerService {
	return &CustomerService{
		AbstractService: &AbstractService{store: params.Store},
	}
}

type CustomerService struct {
	*AbstractService
}

type CustomerInput struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (s *CustomerService) CreateCustomer(ctx context.Context, input CustomerInput) (*objects.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.store.Customers().GetByEmail(ctx, email); err == nil {
		return nil, errs.Conflict("Customer email already exists")
	} else if !store.IsNotFound(err) {
		return nil, err
	}

	customer := &objects.Customer{
		Email: email,
		Name:  input.Name,
		Phone: input.Phone,
	}

	if err := s.store.Customers().Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, id string) (*objects.Customer, error) {
	customer, err := s.store.Customers().GetByID(ctx, id)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, errs.NotFound("Customer", id)
		}

		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) ListCustomers(ctx context.Context, page objects.PageParams) ([]*objects.Customer, int64, error) {
	return s.store.Customers().List(ctx, page)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id string, input CustomerInput) (*objects.Customer, error) {
	customer, err := s.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	customer.Email = strings.ToLower(strings.TrimSpace(input.Email))
	customer.Name = input.Name
	customer.Phone = input.Phone

	if err := s.store.Customers().Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.store.Customers().Delete(ctx, id); err != nil {
		if store.IsNotFound(err) {
			return errs.NotFound("Customer", id)
		}

		return err
	}

	return nil
}
