package models

import "time"

// Role enumerates the closed set of user roles.
type Role string

const (
	RoleSolicitante Role = "Solicitante"
	RoleAprobador   Role = "Aprobador"
	RoleAdmin       Role = "Admin"
)

// Valid reports whether the role is one of the recognised values.
func (r Role) Valid() bool {
	switch r {
	case RoleSolicitante, RoleAprobador, RoleAdmin:
		return true
	}
	return false
}

// User is an account that owns documents, approves them and receives
// notifications. Email is immutable after creation. Deactivation flips
// Active instead of removing the row so historical references survive.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:255;not null" json:"full_name"`
	Role         Role      `gorm:"size:32;not null;default:Solicitante" json:"role"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time `json:"created_at"`

	Documents     []Document       `gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Approvals     []ApprovalRecord `gorm:"foreignKey:ApproverID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	AuditActions  []AuditAction    `gorm:"foreignKey:ActorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Notifications []Notification   `gorm:"foreignKey:ReceiverID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
