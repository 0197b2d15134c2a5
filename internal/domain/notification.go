package domain

type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type RosterUpdatedData struct {
	ScheduleID   string `json:"scheduleID"`
	ScheduleName string `json:"scheduleName"`
	Branch       string `json:"branch"`
	UpdatedBy    string `json:"updatedBy"`
}

type ImportCompletedData struct {
	ScheduleName string   `json:"scheduleName"`
	Applied      int      `json:"applied"`
	Skipped      int      `json:"skipped"`
	Diagnostics  []string `json:"diagnostics"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}
