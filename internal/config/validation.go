package config

import (
	"fmt"
	"strings"
)

// ValidationError is a single problem found in a job.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the job and returns ValidationErrors listing every problem,
// or nil.
func (j *Job) Validate() error {
	var errs ValidationErrors

	if len(j.Inputs) == 0 {
		errs = append(errs, ValidationError{Field: "inputs", Message: "at least one input is required"})
	}
	if strings.TrimSpace(j.Output) == "" {
		errs = append(errs, ValidationError{Field: "output", Message: "output directory is required"})
	}
	if _, err := j.ExportFormat(); err != nil {
		errs = append(errs, ValidationError{Field: "format", Message: err.Error()})
	}
	if j.UndoLimit < 0 {
		errs = append(errs, ValidationError{Field: "undo_limit", Message: "must not be negative"})
	}

	for i := range j.Steps {
		errs = append(errs, validateStep(fmt.Sprintf("steps[%d]", i), &j.Steps[i])...)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateStep(field string, s *Step) ValidationErrors {
	var errs ValidationErrors
	add := func(sub, msg string) {
		errs = append(errs, ValidationError{Field: field + sub, Message: msg})
	}

	if s.Scope != ScopeCurrent && s.Scope != ScopeAll {
		add(".scope", fmt.Sprintf("unknown scope %q (want current or all)", s.Scope))
	}
	if s.Frame != nil && *s.Frame < 0 {
		add(".frame", "must not be negative")
	}

	switch s.Kind {
	case KindColorSwap:
		if len(s.Rules) == 0 {
			add(".rules", "colorswap needs at least one rule")
		}
		if _, err := s.SwapRules(); err != nil {
			add("."+ruleField(err), err.Error())
		}
	case KindGuideCheck:
		if s.Radius < 0 {
			add(".radius", "must not be negative")
		}
		if s.Thickness < 0 {
			add(".thickness", "must not be negative")
		}
		if _, err := s.GuideRules(); err != nil {
			add("."+ruleField(err), err.Error())
		}
	case KindAlphaCheck:
		if s.CrossSize < 0 {
			add(".cross_size", "must not be negative")
		}
		if s.Thickness < 0 {
			add(".thickness", "must not be negative")
		}
		if _, err := s.AlphaParams(); err != nil {
			add(".cross_color", err.Error())
		}
	case KindUndo, KindRedo:
		if s.Count < 0 {
			add(".count", "must not be negative")
		}
	default:
		add(".kind", fmt.Sprintf("unknown step kind %q", s.Kind))
	}
	return errs
}

// ruleField extracts the "rules[i].source" prefix of a conversion error.
func ruleField(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ":"); i > 0 {
		return msg[:i]
	}
	return "rules"
}
