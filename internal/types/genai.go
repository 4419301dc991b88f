package types

// SimulationResult is the payload of POST /jobs/simulate/{taskId}.
// The backend reports soft failures through Error with a 200 status.
type SimulationResult struct {
	OriginalAvgScore float64          `json:"original_avg_score"`
	NewAvgScore      float64          `json:"new_avg_score"`
	ScoreDelta       float64          `json:"score_delta"`
	OriginalReach    *float64         `json:"original_reach,omitempty"`
	NewReach         float64          `json:"new_reach"`
	ReachDelta       float64          `json:"reach_delta"`
	JobsImproved     int              `json:"jobs_improved"`
	TopImprovements  []JobImprovement `json:"top_improvements,omitempty"`
	Error            string           `json:"error,omitempty"`
}

// JobImprovement is one job whose score rose in a simulation.
type JobImprovement struct {
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	OldScore float64 `json:"old_score"`
	NewScore float64 `json:"new_score"`
	Delta    float64 `json:"delta"`
}

// RoleSuggestion is one role proposed for a resume.
type RoleSuggestion struct {
	Title  string   `json:"title"`
	Reason string   `json:"reason"`
	Skills []string `json:"skills"`
}

// RoleSuggestions is the payload of POST /genai/suggest-roles.
type RoleSuggestions struct {
	Roles []RoleSuggestion `json:"roles"`
}

// RoadmapMonth is one month of a learning roadmap.
type RoadmapMonth struct {
	Month         int      `json:"month"`
	FocusTopic    string   `json:"focus_topic"`
	SkillsToLearn []string `json:"skills_to_learn"`
	Resources     []string `json:"resources"`
	ProjectIdea   string   `json:"project_idea"`
}

// RoadmapProject is one suggested portfolio project.
type RoadmapProject struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TechStack     []string `json:"tech_stack"`
	RecruiterHook string   `json:"recruiter_hook"`
}

// Roadmap is the payload of POST /genai/roadmap.
type Roadmap struct {
	MonthlyPlan       []RoadmapMonth   `json:"monthly_plan"`
	PortfolioProjects []RoadmapProject `json:"portfolio_projects"`
}

// PivotOption is one adjacent role reachable from the current skills.
type PivotOption struct {
	Role              string   `json:"role"`
	OverlapPercentage int      `json:"overlap_percentage"`
	BridgeSkills      []string `json:"bridge_skills"`
	SalaryPotential   string   `json:"salary_potential"`
}

// PivotSuggestions is the payload of POST /genai/pivot.
type PivotSuggestions struct {
	Pivots []PivotOption `json:"pivots"`
}

// ResumePatch is one bullet the comparison suggests adding or rewriting.
type ResumePatch struct {
	Section     string `json:"section,omitempty"`
	BulletPoint string `json:"bullet_point"`
	Reason      string `json:"reason,omitempty"`
}

// GapAnalysis is the language-model part of a comparison.
type GapAnalysis struct {
	WhyItFits      string        `json:"why_it_fits"`
	WhyItDoesntFit string        `json:"why_it_doesnt_fit"`
	MissingSkills  []string      `json:"missing_skills,omitempty"`
	ResumePatches  []ResumePatch `json:"resume_patches"`
}

// Comparison is the payload of POST /jobs/compare.
type Comparison struct {
	MatchScore         float64     `json:"match_score"`
	CrossEncoderScore  float64     `json:"cross_encoder_score"`
	LLMAnalysis        GapAnalysis `json:"llm_analysis"`
	ResumeText         string      `json:"resume_text,omitempty"`
	JobDescriptionText string      `json:"jd_text,omitempty"`
}
