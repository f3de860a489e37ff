package search

import (
	"sync"
	"testing"

	"github.com/poiesic/coursefinder/core"
)

func testCourses() []core.Course {
	return []core.Course{
		{
			ID:            "c1",
			Title:         "Intro to Python",
			Description:   "This course covers Python programming from scratch",
			Category:      "Programming",
			Difficulty:    "Beginner",
			Skills:        []string{"python"},
			Prerequisites: "None",
		},
		{
			ID:            "c2",
			Title:         "Advanced ML",
			Description:   "Machine learning with Python at scale",
			Category:      "Data Science",
			Difficulty:    "Advanced",
			Skills:        []string{"ml", "python"},
			Prerequisites: "Intro to Python",
		},
		{
			ID:            "c3",
			Title:         "Web Design",
			Description:   "Build websites with HTML and CSS",
			Category:      "Design",
			Difficulty:    "Beginner",
			Skills:        []string{"HTML", "CSS"},
			Prerequisites: "None",
		},
		{
			ID:            "c4",
			Title:         "Data Analysis",
			Description:   "Analyze data with pandas",
			Category:      "Data Science",
			Difficulty:    "Intermediate",
			Skills:        []string{"Pandas", "Python"},
			Prerequisites: "Basic Python",
		},
	}
}

// recordingMonitor captures monitor callbacks for assertions.
type recordingMonitor struct {
	mu       sync.Mutex
	started  []string
	failures []error
	finished [][]core.ScoredCourse
}

func (r *recordingMonitor) Start(_ Kind, query string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, query)
}

func (r *recordingMonitor) Failed(_ string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, err)
}

func (r *recordingMonitor) Finish(_ string, results []core.ScoredCourse) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, results)
}

func assertRanked(t testing.TB, results []core.ScoredCourse) {
	t.Helper()
	for i := range results {
		if results[i].Rank != i+1 {
			t.Errorf("result %d has rank %d", i, results[i].Rank)
		}
		if i > 0 && results[i].SimilarityScore > results[i-1].SimilarityScore {
			t.Errorf("result %d scores higher than result %d", i, i-1)
		}
	}
}
