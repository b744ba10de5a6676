package models

import "time"

type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteRejected InviteStatus = "rejected"
)

// InviteInitiator tags which side opened the invite. Only the other side may
// respond to it.
type InviteInitiator string

const (
	InitiatorConsultant InviteInitiator = "consultant"
	InitiatorUser       InviteInitiator = "user"
)

// ConsultantRequest is an invite between a consultant and a user. At most one
// pending row may exist per (consultant, user) pair; rejected and superseded
// rows for the same pair may accumulate, so the partial unique index below
// covers only the pending subset.
type ConsultantRequest struct {
	RequestID     uint            `gorm:"primaryKey;autoIncrement" json:"request_id"`
	ConsultantUID string          `gorm:"index;not null;uniqueIndex:idx_pending_invite_pair,where:status = 'pending'" json:"consultant_uid"`
	UserUID       string          `gorm:"index;not null;uniqueIndex:idx_pending_invite_pair" json:"user_uid"`
	Status        InviteStatus    `gorm:"size:10;not null" json:"status"`
	Initiator     InviteInitiator `gorm:"size:10;not null" json:"initiator"`
	CreatedAt     time.Time       `json:"created_at"`
	RespondedAt   *time.Time      `json:"responded_at"`
}
