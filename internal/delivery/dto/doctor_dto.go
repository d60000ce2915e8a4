package dto

type DoctorResponse struct {
	UserID        string                `json:"userId"`
	FirstName     string                `json:"firstName"`
	LastName      string                `json:"lastName"`
	Email         string                `json:"email"`
	DoctorProfile DoctorProfileResponse `json:"doctorProfile"`
}
