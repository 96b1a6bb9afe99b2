package goshogi

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

type ruleFile struct {
	Rules []*Rule `yaml:"rules"`
}

// LoadRuleBook decodes a YAML document holding a list of rules under the
// "rules" key. Every rule is validated.
func LoadRuleBook(r io.Reader) (RuleBook, error) {
	var f ruleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	book := RuleBook{}
	for _, rule := range f.Rules {
		if _, dup := book[rule.ID]; dup {
			return nil, fmt.Errorf("rule %d defined twice", rule.ID)
		}
		if err := rule.Validate(); err != nil {
			return nil, err
		}
		book[rule.ID] = rule
	}
	return book, nil
}

// LoadRuleFile reads a YAML rule file from disk.
func LoadRuleFile(path string) (RuleBook, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadRuleBook(f)
}

// Merge copies every rule of o into b, replacing rules with the same id.
func (b RuleBook) Merge(o RuleBook) RuleBook {
	for id, r := range o {
		b[id] = r
	}
	return b
}

// MarshalYAML renders the book in the format LoadRuleBook reads.
func (b RuleBook) MarshalYAML() (any, error) {
	f := ruleFile{}
	for _, id := range b.IDs() {
		f.Rules = append(f.Rules, b[id])
	}
	return f, nil
}
