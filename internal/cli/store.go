package cli

import "quiz-pulse/internal/dto"

// wizardStore carries state between the wizard's screens for the lifetime of
// one process: the captured email and the last submitted attempt. The last
// attempt is consumed once by the report screen and cleared on retake.
// Nothing here survives process exit, by design.
type wizardStore struct {
	email      string
	lastResult *dto.SubmitQuizRequest
}

func (s *wizardStore) SetEmail(email string) { s.email = email }
func (s *wizardStore) Email() string         { return s.email }

func (s *wizardStore) SetLastResult(result *dto.SubmitQuizRequest) {
	s.lastResult = result
}

// ConsumeLastResult returns the stored attempt and clears it.
func (s *wizardStore) ConsumeLastResult() *dto.SubmitQuizRequest {
	result := s.lastResult
	s.lastResult = nil
	return result
}

func (s *wizardStore) Clear() {
	s.lastResult = nil
}
