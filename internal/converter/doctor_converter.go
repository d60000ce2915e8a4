package converter

import (
	"health-booking-api/internal/delivery/dto"
	"health-booking-api/internal/domain/entity"
)

// DoctorProfileToResponse converts an optional profile snapshot. A nil
// input stays nil so omitempty drops the key.
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if profile == nil {
		return nil
	}
	slots := profile.AvailSlots
	if slots == nil {
		slots = []string{}
	}
	return &dto.DoctorProfileResponse{
		Specialty:  profile.Specialty,
		City:       profile.City,
		AvailSlots: slots,
	}
}

// DoctorToResponse converts a doctor User entity. Doctors without a
// stored profile still get an empty doctorProfile with an availSlots key.
func DoctorToResponse(doctor *entity.User) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	profile := DoctorProfileToResponse(doctor.DoctorProfile)
	if profile == nil {
		profile = &dto.DoctorProfileResponse{AvailSlots: []string{}}
	}

	return &dto.DoctorResponse{
		UserID:        doctor.UserID,
		FirstName:     doctor.FirstName,
		LastName:      doctor.LastName,
		Email:         doctor.Email,
		DoctorProfile: *profile,
	}
}

// UserToResponse converts a confirmed user record
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}
	return &dto.UserResponse{
		UserID:        user.UserID,
		Email:         user.Email,
		Role:          string(user.Role),
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		DoctorProfile: DoctorProfileToResponse(user.DoctorProfile),
		CreatedAt:     formatTimestamp(user.CreatedAt),
	}
}
