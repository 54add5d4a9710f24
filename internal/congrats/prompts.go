package congrats

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ykvlv/birthday-bot/assets"
)

// Prompts is the prompt pair sent to the generation backend.
type Prompts struct {
	System string `yaml:"system_prompt"`
	// User must contain one %s, replaced with the HTML mention.
	User string `yaml:"user_prompt"`
}

// DefaultPrompts returns the built-in Russian prompts.
func DefaultPrompts() Prompts {
	return defaultPrompts()
}

var defaultPrompts = sync.OnceValue(func() Prompts {
	p, err := parsePrompts(assets.PromptsYAML)
	if err != nil {
		panic("embedded prompts: " + err.Error())
	}
	return p
})

func parsePrompts(data []byte) (Prompts, error) {
	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, err
	}
	if p.User != "" && strings.Count(p.User, "%s") != 1 {
		return p, fmt.Errorf("user_prompt must contain exactly one %%s")
	}
	return p, nil
}

// LoadPrompts reads overrides from a YAML file. An empty path yields the
// defaults; fields missing from the file keep their default value.
func LoadPrompts(path string) (Prompts, error) {
	p := DefaultPrompts()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read prompts: %w", err)
	}

	override, err := parsePrompts(data)
	if err != nil {
		return p, fmt.Errorf("parse prompts: %w", err)
	}
	if override.System != "" {
		p.System = override.System
	}
	if override.User != "" {
		p.User = override.User
	}
	return p, nil
}

// UserFor renders the user prompt for a mention. Any other % in the
// template is kept literally.
func (p Prompts) UserFor(mention string) string {
	return strings.Replace(p.User, "%s", mention, 1)
}
