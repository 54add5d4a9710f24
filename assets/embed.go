// Package assets holds files compiled into the binary.
package assets

import _ "embed"

// PromptsYAML is the built-in prompt file, in the format read from PROMPTS_PATH.
//
//go:embed prompts.yaml
var PromptsYAML []byte
