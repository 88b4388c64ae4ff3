package templates

import (
	"strings"

	"github.com/xavierca1/lead-outreach/internal/entity"
)

const (
	fallbackFirstName = "there"
	fallbackAddress   = "your property"
)

type Message struct {
	Subject string
	Body    string
}

type Composer struct {
	catalog *Catalog
}

func NewComposer(catalog *Catalog) *Composer {
	return &Composer{catalog: catalog}
}

// Compose renders the category template for lead.
func (c *Composer) Compose(lead *entity.Lead, sender entity.SenderConfig) (Message, error) {
	return c.render(c.catalog.Lookup(lead.Category), lead, sender)
}

// ComposeFollowUp renders the follow-up template, regardless of category.
func (c *Composer) ComposeFollowUp(lead *entity.Lead, sender entity.SenderConfig) (Message, error) {
	return c.render(c.catalog.FollowUp(), lead, sender)
}

func (c *Composer) render(tpl *Template, lead *entity.Lead, sender entity.SenderConfig) (Message, error) {
	body, err := tpl.Render(BodyFields{
		FirstName:     FirstName(lead),
		Address:       Address(lead),
		SenderName:    sender.Name,
		SenderCompany: sender.Company,
		SenderPhone:   sender.Phone,
	})
	if err != nil {
		return Message{}, err
	}
	return Message{Subject: tpl.Subject, Body: strings.TrimRight(body, "\n") + "\n"}, nil
}

func FirstName(lead *entity.Lead) string {
	if fn := strings.TrimSpace(lead.FirstName); fn != "" {
		return fn
	}
	if fields := strings.Fields(lead.Name); len(fields) > 0 {
		return fields[0]
	}
	return fallbackFirstName
}

func Address(lead *entity.Lead) string {
	if a := strings.TrimSpace(lead.Address); a != "" {
		return a
	}
	return fallbackAddress
}
