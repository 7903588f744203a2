// Package template parses stage template files and substitutes prompt variables.
//
// A stage template is a markdown document that may open with a YAML frontmatter
// block bounded by "---" lines. The frontmatter maps action names to prompt
// definitions:
//
//	---
//	build:
//	  prompt: |
//	    Build instructions...
//	run:
//	  prompt: |
//	    Run instructions...
//	---
//
//	# Template Content
//	...
//
// Everything after the closing delimiter is the template body, written verbatim
// (after variable fill-in) as the initial content of the stage document.
// A file without a leading delimiter is all body and defines no actions.
//
// Key types and functions:
//   - [Template] - Parsed actions and body of a stage template
//   - [Parse] - Reads and parses a template file
//   - [Substitute] - Replaces {{NAME}} placeholders, warning on leftovers
//   - [Fill] - Like [Substitute] but silent about unresolved placeholders
package template

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// frontmatterDelimiter bounds the YAML frontmatter block. The delimiter must
// occupy a full line; the opening one must be the first line of the file.
const frontmatterDelimiter = "---\n"

// ErrParse is a sentinel error indicating that a template frontmatter block
// exists but is not valid YAML. Callers should report the template file as
// broken; fixing the frontmatter is the remediation.
var ErrParse = errors.New("invalid template frontmatter")

// ActionDef holds the prompt for a single action within a template.
type ActionDef struct {
	// Prompt is the AI prompt text for this action. Empty when the
	// frontmatter entry had no usable prompt field.
	Prompt string
}

// Template is a parsed stage template.
type Template struct {
	// Actions maps action names (build, continue, run, ...) to their prompts.
	Actions map[string]ActionDef

	// Body is the document content after the frontmatter, byte-exact.
	// For files without frontmatter, Body is the whole file.
	Body string
}

// Parse reads and parses the template file at path.
//
// Returns [ErrParse] (wrapped with file context) if the frontmatter exists but
// cannot be parsed as YAML. A missing file surfaces as the wrapped os error;
// callers decide whether that is fatal.
func Parse(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	tmpl, err := parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", path, err)
	}
	return tmpl, nil
}

func parse(content string) (*Template, error) {
	if !strings.HasPrefix(content, frontmatterDelimiter) {
		return &Template{Body: content}, nil
	}

	// parts: "" before the opening delimiter, frontmatter, body
	parts := strings.SplitN(content, frontmatterDelimiter, 3)
	if len(parts) < 3 {
		// Unterminated frontmatter is treated as plain body, matching the
		// lenient handling of templates authored without actions.
		return &Template{Body: content}, nil
	}

	var meta any
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	tmpl := &Template{Actions: map[string]ActionDef{}, Body: parts[2]}

	// Tolerate any well-formed YAML shape: entries that are not mappings with
	// a string prompt simply define an action without a usable prompt.
	mapping, ok := meta.(map[string]any)
	if !ok {
		return tmpl, nil
	}
	for name, value := range mapping {
		def := ActionDef{}
		if fields, ok := value.(map[string]any); ok {
			if prompt, ok := fields["prompt"].(string); ok {
				def.Prompt = prompt
			}
		}
		tmpl.Actions[name] = def
	}
	return tmpl, nil
}

// ActionPrompt returns the prompt for the given action.
//
// The second return value is false when the action is absent or has no usable
// prompt, in which case callers fall back to the generic instruction format.
func (t *Template) ActionPrompt(action string) (string, bool) {
	def, ok := t.Actions[action]
	if !ok || def.Prompt == "" {
		return "", false
	}
	return def.Prompt, true
}

// placeholderPattern matches {{NAME}} template placeholders.
var placeholderPattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Substitute replaces every {{KEY}} occurrence in text with vars[KEY].
//
// Matching is case-sensitive with no partial-key matching. Placeholders left
// unresolved after substitution are logged as warnings and kept intact in the
// output; an unresolved variable never aborts the operation, so partially
// specified templates still produce usable output.
func Substitute(text string, vars map[string]string, log *zap.Logger) string {
	if log == nil {
		log = zap.NewNop()
	}
	out := Fill(text, vars)

	for _, match := range placeholderPattern.FindAllStringSubmatch(out, -1) {
		log.Warn("template variable not replaced",
			zap.String("variable", match[1]))
	}
	return out
}

// Fill replaces every {{KEY}} occurrence in text with vars[KEY], leaving
// unknown placeholders intact without any diagnostics. Used for document
// bodies, where unresolved placeholders are routine.
func Fill(text string, vars map[string]string) string {
	out := text
	for name, value := range vars {
		out = strings.ReplaceAll(out, "{{"+name+"}}", value)
	}
	return out
}
