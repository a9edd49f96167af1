package model

import (
	"time"

	"github.com/google/uuid"

	UserModel "teecha_backend/internals/features/users/user/model"
)

type ConnectionModel struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	RequesterID uuid.UUID `gorm:"type:uuid;not null;index" json:"requesterId"`
	ReceiverID  uuid.UUID `gorm:"type:uuid;not null;index" json:"receiverId"`
	Status      string    `gorm:"type:varchar(10);not null;default:'pending';index" json:"status"`
	Message     *string   `gorm:"type:text" json:"message"`
	CreatedAt   time.Time `gorm:"type:timestamptz;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updatedAt"`

	// Relations
	Requester *UserModel.UserModel `gorm:"foreignKey:RequesterID;constraint:OnDelete:CASCADE" json:"-"`
	Receiver  *UserModel.UserModel `gorm:"foreignKey:ReceiverID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ConnectionModel) TableName() string {
	return "connections"
}

// OtherParty returns the id on the opposite side of the connection from me.
func (c ConnectionModel) OtherParty(me uuid.UUID) uuid.UUID {
	if c.RequesterID == me {
		return c.ReceiverID
	}
	return c.RequesterID
}

func (c ConnectionModel) Involves(id uuid.UUID) bool {
	return c.RequesterID == id || c.ReceiverID == id
}
