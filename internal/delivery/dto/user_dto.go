package dto

// PostConfirmationRequest is the identity-provider lifecycle hook payload
// received when a user completes confirmation.
type PostConfirmationRequest struct {
	UserID     string   `json:"userId" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	Role       string   `json:"role" validate:"omitempty,oneof=PATIENT DOCTOR"`
	FirstName  string   `json:"firstName"`
	LastName   string   `json:"lastName"`
	Specialty  string   `json:"specialty"`
	City       string   `json:"city"`
	AvailSlots []string `json:"availSlots"`
}

type UserResponse struct {
	UserID        string                 `json:"userId"`
	Email         string                 `json:"email"`
	Role          string                 `json:"role"`
	FirstName     string                 `json:"firstName"`
	LastName      string                 `json:"lastName"`
	DoctorProfile *DoctorProfileResponse `json:"doctorProfile,omitempty"`
	CreatedAt     string                 `json:"createdAt"`
}
