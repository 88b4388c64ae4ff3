package usecase

import (
	"github.com/xavierca1/lead-outreach/internal/entity"
	"github.com/xavierca1/lead-outreach/internal/infra/templates"
)

type MessageComposer interface {
	Compose(lead *entity.Lead, sender entity.SenderConfig) (templates.Message, error)
	ComposeFollowUp(lead *entity.Lead, sender entity.SenderConfig) (templates.Message, error)
}
