package hr

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("employee not found")
	ErrInvalidInput = errors.New("invalid employee input")
)

// Roles an employee can hold on the floor.
const (
	RoleCashier = "cashier"
	RoleManager = "manager"
)

// Employee is a staff member who can run a terminal.
type Employee struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input captures payload for creating or updating an employee.
type Input struct {
	Name   string
	Role   string
	Active bool
}

// Store defines the persistence operations the roster relies on.
type Store interface {
	ListEmployees(ctx context.Context, activeOnly bool) ([]Employee, error)
	GetEmployee(ctx context.Context, id uuid.UUID) (Employee, error)
	CreateEmployee(ctx context.Context, in Input) (Employee, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, in Input) (Employee, error)
}

// Service manages the staff roster.
type Service struct {
	Store Store
}

// List returns employees, optionally only active ones.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]Employee, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("hr service not configured")
	}
	return s.Store.ListEmployees(ctx, activeOnly)
}

// Get returns one employee by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (Employee, error) {
	if s == nil || s.Store == nil {
		return Employee{}, errors.New("hr service not configured")
	}
	return s.Store.GetEmployee(ctx, id)
}

// Create validates and persists a new employee.
func (s *Service) Create(ctx context.Context, in Input) (Employee, error) {
	if s == nil || s.Store == nil {
		return Employee{}, errors.New("hr service not configured")
	}
	if err := validate(&in); err != nil {
		return Employee{}, err
	}
	return s.Store.CreateEmployee(ctx, in)
}

// Update validates and persists changes to an employee.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in Input) (Employee, error) {
	if s == nil || s.Store == nil {
		return Employee{}, errors.New("hr service not configured")
	}
	if err := validate(&in); err != nil {
		return Employee{}, err
	}
	return s.Store.UpdateEmployee(ctx, id, in)
}

func validate(in *Input) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("name is required: %w", ErrInvalidInput)
	}
	switch in.Role {
	case RoleCashier, RoleManager:
		return nil
	default:
		return fmt.Errorf("role must be %s or %s: %w", RoleCashier, RoleManager, ErrInvalidInput)
	}
}
