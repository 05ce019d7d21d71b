package domain

type StaffStatus string

const (
	StaffStatusActive  StaffStatus = "active"
	StaffStatusOnLeave StaffStatus = "on-leave"
)

type Staff struct {
	ID         string      `json:"staffId" gorm:"column:staff_id;primaryKey"`
	Name       string      `json:"name" gorm:"index"`
	Role       string      `json:"role"`
	Phone      string      `json:"phone,omitempty"`
	Shift      string      `json:"shift,omitempty"`
	Status     StaffStatus `json:"status"`
	JoinDate   string      `json:"joinDate,omitempty"`
	LastActive string      `json:"lastActive,omitempty"`
}

func (Staff) TableName() string { return "staff" }
