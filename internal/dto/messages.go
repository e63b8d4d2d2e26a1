package dto

// Success messages returned to clients.
const (
	MsgClubRegistered    = "Club admin registered successfully"
	MsgStudentRegistered = "Student registered successfully"
	MsgLoginSuccessful   = "Login successful"
	MsgEventCreated      = "Event created successfully"
)
