package usecase

import (
	"context"
	"time"

	"health-booking-api/internal/converter"
	"health-booking-api/internal/delivery/dto"
	"health-booking-api/internal/domain/entity"
	"health-booking-api/internal/domain/repository"
	"health-booking-api/pkg/timeslot"

	"github.com/sirupsen/logrus"
)

// AllowedSpecialties and AllowedCities gate the attributes a confirming
// doctor may carry; values outside the allow-lists are dropped.
var AllowedSpecialties = map[string]struct{}{
	"Cardiology":       {},
	"Dermatology":      {},
	"General Medicine": {},
	"Pulmonology":      {},
	"Gastroenterology": {},
	"Orthopedics":      {},
	"Neurology":        {},
	"Pediatrics":       {},
	"Ophthalmology":    {},
	"ENT":              {},
}

var AllowedCities = map[string]struct{}{
	"Paris":     {},
	"Lyon":      {},
	"Marseille": {},
	"Toulouse":  {},
	"Nice":      {},
	"Virtual":   {},
}

// Default availability grid parameters: the next business days get
// half-hour slots between 09:00 and 17:00.
const (
	defaultGridDays      = 3
	defaultGridStartHour = 9
	defaultGridEndHour   = 17
)

// UserConfirmationUsecase handles the identity-provider post-confirmation
// hook: it derives the role, builds a doctor profile where applicable and
// persists the user record.
type UserConfirmationUsecase interface {
	Confirm(ctx context.Context, req *dto.PostConfirmationRequest) (*dto.UserResponse, error)
}

// GroupAssigner records role-group membership in the identity directory.
type GroupAssigner interface {
	AddToGroup(ctx context.Context, role entity.Role, email string) error
}

type userConfirmationUsecase struct {
	log      *logrus.Logger
	userRepo repository.UserRepository
	groups   GroupAssigner
}

func NewUserConfirmationUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	groups GroupAssigner,
) UserConfirmationUsecase {
	return &userConfirmationUsecase{
		log:      log,
		userRepo: userRepo,
		groups:   groups,
	}
}

func (u *userConfirmationUsecase) Confirm(ctx context.Context, req *dto.PostConfirmationRequest) (*dto.UserResponse, error) {
	role := entity.Role(req.Role)
	if role == "" {
		role = entity.RolePatient
	}

	user := &entity.User{
		UserID:    req.UserID,
		Email:     req.Email,
		Role:      role,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: time.Now().UTC(),
	}
	if role == entity.RoleDoctor {
		user.DoctorProfile = buildDoctorProfile(req)
	}

	if err := u.userRepo.Upsert(ctx, user); err != nil {
		u.log.Errorf("Failed to persist confirmed user %s: %+v", req.UserID, err)
		return nil, err
	}

	// Group assignment is best-effort and never blocks confirmation.
	if err := u.groups.AddToGroup(ctx, role, req.Email); err != nil {
		u.log.Warnf("Failed to assign %s to group %s (non-fatal): %+v", req.Email, role, err)
	}

	u.log.Infof("User confirmed: id=%s, role=%s", req.UserID, role)
	return converter.UserToResponse(user), nil
}

// buildDoctorProfile validates the supplied attributes against the
// allow-lists and falls back to a generated availability grid when no
// usable slots were provided.
func buildDoctorProfile(req *dto.PostConfirmationRequest) *entity.DoctorProfile {
	profile := &entity.DoctorProfile{}
	if _, ok := AllowedSpecialties[req.Specialty]; ok {
		profile.Specialty = req.Specialty
	}
	if _, ok := AllowedCities[req.City]; ok {
		profile.City = req.City
	}

	slots := make([]string, 0, len(req.AvailSlots))
	for _, raw := range req.AvailSlots {
		if normalized, err := timeslot.Normalize(raw); err == nil {
			slots = append(slots, normalized)
		}
	}
	if len(slots) == 0 {
		slots = DefaultSlotGrid(time.Now().UTC())
	}
	profile.AvailSlots = slots

	return profile
}

// DefaultSlotGrid generates half-hour slots between 09:00 and 17:00 UTC
// for the next business days, skipping weekends.
func DefaultSlotGrid(from time.Time) []string {
	var slots []string
	daysGenerated := 0
	for offset := 0; daysGenerated < defaultGridDays; offset++ {
		day := from.AddDate(0, 0, offset)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		for hour := defaultGridStartHour; hour < defaultGridEndHour; hour++ {
			for _, minute := range []int{0, 30} {
				slot := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
				slots = append(slots, timeslot.Format(slot))
			}
		}
		daysGenerated++
	}
	return slots
}
