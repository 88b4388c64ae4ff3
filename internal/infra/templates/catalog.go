package templates

import (
	_ "embed"
	"fmt"

	"github.com/osteele/liquid"
	"gopkg.in/yaml.v3"

	"github.com/xavierca1/lead-outreach/internal/entity"
)

//go:embed templates.yaml
var defaultCatalog []byte

// BodyFields are the only values a template body may reference.
type BodyFields struct {
	FirstName     string
	Address       string
	SenderName    string
	SenderCompany string
	SenderPhone   string
}

type Template struct {
	Subject string
	body    *liquid.Template
}

// Render is pure: same fields, same output.
func (t *Template) Render(f BodyFields) (string, error) {
	out, err := t.body.RenderString(liquid.Bindings{
		"first_name":     f.FirstName,
		"address":        f.Address,
		"sender_name":    f.SenderName,
		"sender_company": f.SenderCompany,
		"sender_phone":   f.SenderPhone,
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	byCategory map[entity.Category]*Template
	followUp   *Template
}

type rawTemplate struct {
	Subject string `yaml:"subject"`
	Body    string `yaml:"body"`
}

type rawCatalog struct {
	Templates map[string]rawTemplate `yaml:"templates"`
	FollowUp  rawTemplate            `yaml:"follow_up"`
}

// LoadDefaultCatalog parses the catalog embedded in the binary.
func LoadDefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode template catalog: %w", err)
	}

	engine := liquid.NewEngine()
	c := &Catalog{byCategory: make(map[entity.Category]*Template, len(raw.Templates))}

	for key, rt := range raw.Templates {
		cat := entity.Category(key)
		if !cat.Valid() {
			return nil, fmt.Errorf("template for unknown category %q", key)
		}
		tpl, err := compile(engine, key, rt)
		if err != nil {
			return nil, err
		}
		c.byCategory[cat] = tpl
	}

	for _, cat := range entity.Categories {
		if _, ok := c.byCategory[cat]; !ok {
			return nil, fmt.Errorf("missing template for category %q", cat)
		}
	}

	followUp, err := compile(engine, "follow_up", raw.FollowUp)
	if err != nil {
		return nil, err
	}
	c.followUp = followUp

	return c, nil
}

func compile(engine *liquid.Engine, name string, rt rawTemplate) (*Template, error) {
	if rt.Subject == "" || rt.Body == "" {
		return nil, fmt.Errorf("template %q needs a subject and a body", name)
	}
	body, err := engine.ParseString(rt.Body)
	if err != nil {
		return nil, fmt.Errorf("parse template %q: %w", name, err)
	}
	return &Template{Subject: rt.Subject, body: body}, nil
}

// Lookup never fails: unknown or empty categories get the default template.
func (c *Catalog) Lookup(cat entity.Category) *Template {
	if t, ok := c.byCategory[cat]; ok {
		return t
	}
	return c.byCategory[entity.DefaultCategory]
}

func (c *Catalog) FollowUp() *Template {
	return c.followUp
}
