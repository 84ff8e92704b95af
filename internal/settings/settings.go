package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid settings input")

// Profile is the restaurant-wide configuration shown on receipts and in the
// back office. Operational knobs such as the tax rate stay in the process
// environment; this covers what staff may edit at runtime.
type Profile struct {
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	ReceiptFooter string    `json:"receiptFooter"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Defaults is what a fresh install serves before anyone saves a profile.
func Defaults() Profile {
	return Profile{Name: "Ruen Thai", ReceiptFooter: "Thank you, see you again"}
}

// Store persists the single restaurant profile.
type Store interface {
	GetProfile(ctx context.Context) (Profile, bool, error)
	SaveProfile(ctx context.Context, p Profile) (Profile, error)
}

// Service reads and updates the restaurant profile.
type Service struct {
	Store Store
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Get returns the saved profile, or the defaults when none was saved yet.
func (s *Service) Get(ctx context.Context) (Profile, error) {
	if s == nil || s.Store == nil {
		return Profile{}, errors.New("settings service not configured")
	}
	p, ok, err := s.Store.GetProfile(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("settings: load profile: %w", err)
	}
	if !ok {
		return Defaults(), nil
	}
	return p, nil
}

// Update replaces the profile in full.
func (s *Service) Update(ctx context.Context, p Profile) (Profile, error) {
	if s == nil || s.Store == nil {
		return Profile{}, errors.New("settings service not configured")
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return Profile{}, fmt.Errorf("restaurant name is required: %w", ErrInvalidInput)
	}
	p.UpdatedAt = s.now()
	return s.Store.SaveProfile(ctx, p)
}
