package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobmatch/pkg/courses"
	"github.com/artem13815/jobmatch/pkg/taxonomy"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(
		taxonomy.NewStore(taxonomy.Default()),
		courses.NewStore(courses.Default(3)),
		12_000,
	)
}

func TestGapSetProperties(t *testing.T) {
	have := []string{"python", "sql"}
	required := []string{"python", "sql", "docker", "kubernetes"}

	missing := Gap(have, required)

	assert.Equal(t, []string{"docker", "kubernetes"}, missing)
	for _, m := range missing {
		assert.NotContains(t, have, m)
		assert.Contains(t, required, m)
	}
}

func TestGapEmptyResume(t *testing.T) {
	required := []string{"python", "docker"}
	assert.Equal(t, required, Gap(nil, required))
}

func TestGapNoJobContext(t *testing.T) {
	assert.Empty(t, Gap([]string{"python"}, nil))
}

func TestAnalyzeEndToEnd(t *testing.T) {
	svc := newTestService(t)

	res := svc.Analyze(
		"Experienced in Python and SQL",
		"We need Python, SQL and Docker in production",
	)

	assert.Equal(t, []string{"python", "sql"}, res.ResumeSkills)
	assert.Equal(t, []string{"python", "sql", "docker"}, res.JobSkills)
	assert.Equal(t, []string{"docker"}, res.MissingSkills)
	require.Len(t, res.Recommendations, 1)
	assert.NotEmpty(t, res.Recommendations["docker"])
}

func TestAnalyzeWithoutJob(t *testing.T) {
	svc := newTestService(t)

	res := svc.Analyze("Python and React developer", "")

	assert.Equal(t, []string{"python", "react"}, res.ResumeSkills)
	assert.Empty(t, res.JobSkills)
	assert.Empty(t, res.MissingSkills)
	assert.Empty(t, res.Recommendations)
	// serializes as {} / [], never null
	assert.NotNil(t, res.MissingSkills)
	assert.NotNil(t, res.Recommendations)
}

func TestAnalyzeDeterministic(t *testing.T) {
	svc := newTestService(t)

	text := "Go, Docker, Kubernetes, PostgreSQL"
	assert.Equal(t, svc.Analyze(text, ""), svc.Analyze(text, ""))
}

func TestAnalyzeMissingSkillWithoutCourses(t *testing.T) {
	svc := newTestService(t)

	res := svc.Analyze("Python only", "Python and Excel required")

	assert.Equal(t, []string{"excel"}, res.MissingSkills)
	require.Contains(t, res.Recommendations, "excel")
	assert.Empty(t, res.Recommendations["excel"])
}
