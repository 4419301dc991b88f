package types

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Portals supported by the scraper engine.
var Portals = []string{"linkedin", "indeed", "glassdoor", "google", "naukri"}

// ValidationError represents a request rejected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct runs struct validation and reports the first failing field.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fieldPath(fe), Message: describe(fe)}
	}
	return &ValidationError{Message: err.Error()}
}

// fieldPath strips the top-level struct name from the namespace.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "is required"
	case "required_without":
		return "is required when " + fe.Param() + " is not set"
	case "min":
		return "must have at least " + fe.Param() + " entries"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}

// ConfirmSkillsRequest is the body of POST /profile/embed.
type ConfirmSkillsRequest struct {
	ProfileID       string   `json:"profile_id,omitempty"`
	RawText         string   `json:"raw_text" validate:"notblank"`
	ConfirmedSkills []string `json:"confirmed_skills" validate:"dive,notblank"`
}

// Validate validates the ConfirmSkillsRequest using the validator.
func (r *ConfirmSkillsRequest) Validate() error {
	return validateStruct(r)
}

// SerpAPIConfig configures the Google Jobs portal.
type SerpAPIConfig struct {
	APIKey  string `json:"api_key" validate:"notblank"`
	NumJobs int    `json:"num_jobs" validate:"gte=1,lte=100"`
}

// StartSearchRequest is the body of POST /jobs/search.
type StartSearchRequest struct {
	ProfileID     string         `json:"profile_id,omitempty"`
	Query         string         `json:"query" validate:"notblank"`
	Location      string         `json:"location" validate:"notblank"`
	Portals       []string       `json:"portals" validate:"min=1,dive,oneof=linkedin indeed glassdoor google naukri"`
	SerpAPIConfig *SerpAPIConfig `json:"serp_api_config" validate:"required"`
}

// Validate validates the StartSearchRequest using the validator.
func (r *StartSearchRequest) Validate() error {
	return validateStruct(r)
}

// SimulateRequest is the body of POST /jobs/simulate/{taskId}.
type SimulateRequest struct {
	ProfileID   string   `json:"profile_id" validate:"notblank"`
	AddedSkills []string `json:"added_skills" validate:"min=1,dive,notblank"`
}

// Validate validates the SimulateRequest using the validator.
func (r *SimulateRequest) Validate() error {
	return validateStruct(r)
}

// RoleSuggestionRequest is the body of POST /genai/suggest-roles.
type RoleSuggestionRequest struct {
	APIKey     string `json:"api_key" validate:"notblank"`
	Provider   string `json:"provider" validate:"notblank"`
	ResumeText string `json:"resume_text" validate:"notblank"`
	UserQuery  string `json:"user_query"`
}

// Validate validates the RoleSuggestionRequest using the validator.
func (r *RoleSuggestionRequest) Validate() error {
	return validateStruct(r)
}

// RoadmapRequest is the body of POST /genai/roadmap.
type RoadmapRequest struct {
	APIKey        string   `json:"api_key" validate:"notblank"`
	Provider      string   `json:"provider" validate:"notblank"`
	CurrentRole   string   `json:"current_role" validate:"notblank"`
	TargetRole    string   `json:"target_role" validate:"notblank"`
	MissingSkills []string `json:"missing_skills" validate:"min=1,dive,notblank"`
}

// Validate validates the RoadmapRequest using the validator.
func (r *RoadmapRequest) Validate() error {
	return validateStruct(r)
}

// PivotRequest is the body of POST /genai/pivot.
type PivotRequest struct {
	APIKey        string   `json:"api_key" validate:"notblank"`
	Provider      string   `json:"provider" validate:"notblank"`
	CurrentRole   string   `json:"current_role" validate:"notblank"`
	CurrentSkills []string `json:"current_skills" validate:"dive,notblank"`
}

// Validate validates the PivotRequest using the validator.
func (r *PivotRequest) Validate() error {
	return validateStruct(r)
}

// CompareRequest is the body of POST /jobs/compare.
type CompareRequest struct {
	ProfileID  string `json:"profile_id,omitempty"`
	ResumeText string `json:"resume_text,omitempty" validate:"required_without=ProfileID"`
	JDText     string `json:"jd_text" validate:"notblank"`
	APIKey     string `json:"api_key" validate:"notblank"`
}

// Validate validates the CompareRequest using the validator.
func (r *CompareRequest) Validate() error {
	return validateStruct(r)
}
