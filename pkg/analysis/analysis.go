package analysis

import (
	"strings"

	"github.com/artem13815/jobmatch/pkg/courses"
	"github.com/artem13815/jobmatch/pkg/taxonomy"
)

// Result is a complete skill-gap analysis. Invariants: MissingSkills is a
// subset of JobSkills disjoint from ResumeSkills, and Recommendations has
// exactly one key per missing skill.
type Result struct {
	ResumeSkills    []string                       `json:"resume_skills"`
	JobSkills       []string                       `json:"job_skills"`
	MissingSkills   []string                       `json:"missing_skills"`
	Recommendations map[string][]courses.CourseRef `json:"course_recommendations"`
}

// Service runs the deterministic analysis pipeline: skill extraction, gap
// computation and course lookup, all against the current reference-data
// snapshots.
type Service struct {
	tax      *taxonomy.Store
	catalog  *courses.Store
	maxChars int
}

func NewService(tax *taxonomy.Store, catalog *courses.Store, maxChars int) *Service {
	return &Service{tax: tax, catalog: catalog, maxChars: maxChars}
}

// ExtractSkills returns the canonical skills mentioned in text.
func (s *Service) ExtractSkills(text string) []string {
	return s.tax.Current().Extract(s.truncate(text))
}

// Analyze extracts resume skills and, when a job description is supplied,
// computes the gap against it and maps every missing skill to course
// suggestions. Without job context the missing set is empty by definition.
func (s *Service) Analyze(resumeText, jobDescription string) Result {
	tax := s.tax.Current()

	resumeSkills := tax.Extract(s.truncate(resumeText))
	jobSkills := []string{}
	if strings.TrimSpace(jobDescription) != "" {
		jobSkills = tax.Extract(s.truncate(jobDescription))
	}
	missing := Gap(resumeSkills, jobSkills)

	return Result{
		ResumeSkills:    resumeSkills,
		JobSkills:       jobSkills,
		MissingSkills:   missing,
		Recommendations: s.catalog.Current().Recommend(missing),
	}
}

// Gap returns required \ have over canonical names, preserving the order of
// required. Both inputs untouched.
func Gap(have, required []string) []string {
	got := make(map[string]struct{}, len(have))
	for _, s := range have {
		got[s] = struct{}{}
	}
	missing := []string{}
	for _, s := range required {
		if _, ok := got[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

func (s *Service) truncate(text string) string {
	if s.maxChars > 0 && len(text) > s.maxChars {
		return text[:s.maxChars]
	}
	return text
}
