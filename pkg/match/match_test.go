package match

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobmatch/pkg/jobs"
)

func job(title, description string) jobs.Job {
	return jobs.Job{ID: uuid.New(), Title: title, Description: description}
}

func TestRankOrdersByRelevance(t *testing.T) {
	all := []jobs.Job{
		job("Frontend", "react javascript css html design"),
		job("Backend", "go postgresql docker kubernetes microservices"),
	}

	got := Rank("go developer building microservices with docker and postgresql", all)

	require.Len(t, got, 2)
	assert.Equal(t, "Backend", got[0].Title)
	assert.Greater(t, got[0].Score, got[1].Score)
	for _, r := range got {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 1.0000001)
	}
}

func TestRankNoJobs(t *testing.T) {
	got := Rank("anything", nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRankDisjointVocabulary(t *testing.T) {
	all := []jobs.Job{job("Chef", "cooking kitchen menu")}

	got := Rank("go developer", all)
	require.Len(t, got, 1)
	assert.Equal(t, 0.0, got[0].Score)
}

func TestRankDeterministic(t *testing.T) {
	all := []jobs.Job{
		job("A", "python pandas numpy"),
		job("B", "java spring hibernate"),
	}
	text := "python data engineer with pandas"
	assert.Equal(t, Rank(text, all), Rank(text, all))
}
