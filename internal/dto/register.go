package dto

type RegisterClubRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	ClubName string `json:"clubName"`
	Email    string `json:"email"`
}

type RegisterStudentRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	Name      string `json:"name"`
	StudentID string `json:"studentId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
