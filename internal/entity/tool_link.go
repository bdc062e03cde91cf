package entity

import (
	"time"

	"github.com/bouwconnect/backend/pkg/enum"
)

type ToolLinkStatus string

var (
	ToolLinkAdded        = enum.New(ToolLinkStatus("added"))
	ToolLinkDisconnected = enum.New(ToolLinkStatus("disconnected"))
)

// ToolLink records that a user wants a tool in their integration list,
// whether or not a token exists for it.
type ToolLink struct {
	UserID string `gorm:"primaryKey"`
	Tool   Tool   `gorm:"primaryKey"`

	Position int
	Status   ToolLinkStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
