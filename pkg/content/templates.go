package content

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates.yaml
var templatesYAML []byte

// promptContext is the data every template renders against.
type promptContext struct {
	Profile promptProfile
	Input   map[string]string
}

type promptProfile struct {
	Name           string
	TargetAudience string
	ContentGoal    string
	ToneOfVoice    string
	Keywords       string
}

// TemplateCatalog holds the parsed prompt templates, one per content type
// plus the shared system and variation prompts.
type TemplateCatalog struct {
	system    *template.Template
	variation *template.Template
	prompts   map[ContentType]*template.Template
}

type catalogFile struct {
	System    string `yaml:"system"`
	Variation string `yaml:"variation"`
	Types     map[string]struct {
		Prompt string `yaml:"prompt"`
	} `yaml:"types"`
}

// LoadTemplateCatalog parses the embedded template file. Every content type
// must have a prompt; a gap here is a packaging bug, so it fails loudly.
func LoadTemplateCatalog() (*TemplateCatalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(templatesYAML, &file); err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}

	system, err := template.New("system").Parse(file.System)
	if err != nil {
		return nil, fmt.Errorf("failed to parse system template: %w", err)
	}
	variation, err := template.New("variation").Parse(file.Variation)
	if err != nil {
		return nil, fmt.Errorf("failed to parse variation template: %w", err)
	}

	catalog := &TemplateCatalog{
		system:    system,
		variation: variation,
		prompts:   make(map[ContentType]*template.Template, len(file.Types)),
	}

	for name, entry := range file.Types {
		contentType, err := ParseContentType(name)
		if err != nil {
			return nil, err
		}
		tmpl, err := template.New(name).Parse(entry.Prompt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		catalog.prompts[contentType] = tmpl
	}

	for _, ct := range []ContentType{TypeFacebook, TypeInstagram, TypeProduct, TypeBlog, TypeVideo} {
		if _, ok := catalog.prompts[ct]; !ok {
			return nil, fmt.Errorf("missing prompt template for content type %q", ct)
		}
	}

	return catalog, nil
}

// Render produces the system and user prompts for a request. For variation
// requests the variation template replaces the system prompt and the user
// prompt is the original text to vary.
func (c *TemplateCatalog) Render(req GenerationRequest) (systemPrompt, userPrompt string, err error) {
	data := promptContext{
		Profile: promptProfile{
			Name:           req.Profile.Name,
			TargetAudience: req.Profile.TargetAudience,
			ContentGoal:    string(req.Profile.ContentGoal),
			ToneOfVoice:    string(req.Profile.ToneOfVoice),
			Keywords:       req.Profile.Keywords,
		},
		Input: req.Input,
	}

	if req.VariationOf != "" {
		var sys strings.Builder
		if err := c.variation.Execute(&sys, data); err != nil {
			return "", "", err
		}
		return sys.String(), "Create a variation of this content:\n\n" + req.VariationOf, nil
	}

	tmpl, ok := c.prompts[req.Type]
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidContentType, req.Type)
	}

	var sys, user strings.Builder
	if err := c.system.Execute(&sys, data); err != nil {
		return "", "", err
	}
	if err := tmpl.Execute(&user, data); err != nil {
		return "", "", err
	}
	return sys.String(), user.String(), nil
}
