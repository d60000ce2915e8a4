package usecase

import (
	"context"
	"sort"
	"strings"

	"health-booking-api/internal/converter"
	"health-booking-api/internal/delivery/dto"
	"health-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type DoctorUsecase interface {
	List(ctx context.Context, specialty, city string) ([]dto.DoctorResponse, error)
}

type doctorUsecase struct {
	log      *logrus.Logger
	userRepo repository.UserRepository
}

func NewDoctorUsecase(log *logrus.Logger, userRepo repository.UserRepository) DoctorUsecase {
	return &doctorUsecase{
		log:      log,
		userRepo: userRepo,
	}
}

// List returns doctors matching the optional specialty and city filters
// (case-insensitive exact match), sorted by (city, lastName).
func (u *doctorUsecase) List(ctx context.Context, specialty, city string) ([]dto.DoctorResponse, error) {
	doctors, err := u.userRepo.FindDoctors(ctx)
	if err != nil {
		u.log.Warnf("Failed to load doctors: %+v", err)
		return nil, err
	}

	specialty = strings.TrimSpace(specialty)
	city = strings.TrimSpace(city)

	results := make([]dto.DoctorResponse, 0, len(doctors))
	for i := range doctors {
		resp := converter.DoctorToResponse(&doctors[i])
		if specialty != "" && !strings.EqualFold(strings.TrimSpace(resp.DoctorProfile.Specialty), specialty) {
			continue
		}
		if city != "" && !strings.EqualFold(strings.TrimSpace(resp.DoctorProfile.City), city) {
			continue
		}
		results = append(results, *resp)
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].DoctorProfile.City != results[j].DoctorProfile.City {
			return results[i].DoctorProfile.City < results[j].DoctorProfile.City
		}
		return results[i].LastName < results[j].LastName
	})

	u.log.Infof("Doctors loaded: count=%d", len(results))
	return results, nil
}
