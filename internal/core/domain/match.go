package domain

import (
	"sort"
	"strings"
	"time"
)

const (
	matchPoints   = 20
	maxMatchScore = 100
)

// JobMatch is a job together with how well it fits a candidate.
type JobMatch struct {
	Job   *Job `json:"job"`
	Score int  `json:"score"`
}

// Candidate is the part of a user the matcher looks at.
type Candidate struct {
	Skills   []string
	Location string
	Level    ExperienceLevel
}

// CandidateFromUser derives a Candidate from a user's profile.
func CandidateFromUser(u *User, now time.Time) Candidate {
	c := Candidate{Location: u.Location}
	if u.Profile != nil {
		c.Skills = u.Profile.Skills
		c.Level = LevelForYears(u.Profile.YearsOfExperience(now))
	}
	return c
}

// ScoreJob awards points per skill found in the job's requirements or title,
// plus points for matching location and experience level. The result is
// capped at 100.
func ScoreJob(c Candidate, j *Job) int {
	score := 0

	jobTerms := make(map[string]struct{})
	for _, r := range j.Requirements {
		for _, t := range splitTerms(r) {
			jobTerms[t] = struct{}{}
		}
	}
	for _, t := range splitTerms(j.Title) {
		jobTerms[t] = struct{}{}
	}
	seen := make(map[string]struct{})
	for _, s := range c.Skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := jobTerms[s]; ok {
			score += matchPoints
		} else if containsPhrase(j, s) {
			score += matchPoints
		}
	}

	if c.Location != "" && strings.EqualFold(strings.TrimSpace(c.Location), j.Location) {
		score += matchPoints
	}
	if c.Level != "" && c.Level == j.ExperienceLevel {
		score += matchPoints
	}

	if score > maxMatchScore {
		return maxMatchScore
	}
	return score
}

// TopMatches scores jobs and returns the best n, highest score first. Ties
// keep the input order.
func TopMatches(c Candidate, jobs []*Job, n int) []JobMatch {
	out := make([]JobMatch, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, JobMatch{Job: j, Score: ScoreJob(c, j)})
	}
	sort.SliceStable(out, func(i, k int) bool { return out[i].Score > out[k].Score })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// multi-word skills such as "machine learning" are matched as phrases
func containsPhrase(j *Job, skill string) bool {
	if !strings.Contains(skill, " ") {
		return false
	}
	if strings.Contains(strings.ToLower(j.Title), skill) {
		return true
	}
	for _, r := range j.Requirements {
		if strings.Contains(strings.ToLower(r), skill) {
			return true
		}
	}
	return false
}

func splitTerms(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		switch r {
		case ' ', ',', ';', '/', '(', ')', '\t', '\n':
			return true
		}
		return false
	})
}
