package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleQuestions() []Question {
	return []Question{
		{Question: "Q1", CorrectAnswer: "Paris", Choices: []string{"Paris", "London", "Rome", "Madrid"}},
		{Question: "Q2", CorrectAnswer: "4", Choices: []string{"3", "4", "5", "6"}},
		{Question: "Q3", CorrectAnswer: "True", Choices: []string{"True", "False"}},
	}
}

func TestGradeQuiz_AllCorrect(t *testing.T) {
	answers := map[int]string{0: "Paris", 1: "4", 2: "True"}

	results, score := GradeQuiz(sampleQuestions(), answers)

	assert.Equal(t, 3, score)
	assert.Len(t, results, 3)
	for _, r := range results {
		assert.True(t, r.IsCorrect)
	}
}

func TestGradeQuiz_UnansweredCountsAsIncorrect(t *testing.T) {
	answers := map[int]string{0: "Paris"}

	results, score := GradeQuiz(sampleQuestions(), answers)

	assert.Equal(t, 1, score)
	assert.True(t, results[0].IsCorrect)
	assert.False(t, results[1].IsCorrect)
	assert.Empty(t, results[1].UserAnswer)
	assert.False(t, results[2].IsCorrect)
}

func TestGradeQuiz_ExactMatchIsCaseSensitive(t *testing.T) {
	answers := map[int]string{0: "paris", 1: " 4", 2: "True"}

	results, score := GradeQuiz(sampleQuestions(), answers)

	assert.Equal(t, 1, score)
	assert.False(t, results[0].IsCorrect, "case must match exactly")
	assert.False(t, results[1].IsCorrect, "no trimming is applied")
	assert.True(t, results[2].IsCorrect)
}

func TestGradeQuiz_ResultCarriesQuestionData(t *testing.T) {
	questions := sampleQuestions()
	answers := map[int]string{1: "5"}

	results, score := GradeQuiz(questions, answers)

	assert.Equal(t, 0, score)
	assert.Equal(t, "Q2", results[1].Question)
	assert.Equal(t, "5", results[1].UserAnswer)
	assert.Equal(t, "4", results[1].CorrectAnswer)
	assert.Equal(t, questions[1].Choices, results[1].AllChoices)
}

func TestGradeQuiz_Empty(t *testing.T) {
	results, score := GradeQuiz(nil, nil)

	assert.Equal(t, 0, score)
	assert.Empty(t, results)
}
