package service

import (
	"fmt"

	"github.com/hmiyake/classquiz/config"
	"github.com/hmiyake/classquiz/internal/apperr"
	"github.com/hmiyake/classquiz/internal/dto"
	"github.com/hmiyake/classquiz/internal/model"
	"github.com/hmiyake/classquiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SubmissionService is the transient answer ledger: one row per answered
// question, pending aggregation by the scoring engine.
type SubmissionService interface {
	SubmitAnswer(userID, testID, questionID, selectedOptionID uint) (*dto.SubmitAnswerResponse, error)
	Reset(userID uint) error
}

type submissionService struct {
	testRepo       repository.TestRepository
	questionRepo   repository.QuestionRepository
	optionRepo     repository.OptionRepository
	submissionRepo repository.SubmissionRepository
	resubmitPolicy string
}

func NewSubmissionService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	submissionRepo repository.SubmissionRepository,
	cfg *config.Config,
) SubmissionService {
	return &submissionService{
		testRepo:       testRepo,
		questionRepo:   questionRepo,
		optionRepo:     optionRepo,
		submissionRepo: submissionRepo,
		resubmitPolicy: cfg.Scoring.ResubmitPolicy,
	}
}

// SubmitAnswer validates the containment chain (test → question → option),
// looks up the single correct option and writes one ledger row with
// score 1 or 0. Zero or multiple correct options is a data integrity
// violation and fails loudly rather than picking one arbitrarily.
func (s *submissionService) SubmitAnswer(userID, testID, questionID, selectedOptionID uint) (*dto.SubmitAnswerResponse, error) {
	if _, err := s.testRepo.FindByID(testID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("test not found with ID %d", testID)
		}
		return nil, err
	}

	question, err := s.questionRepo.FindByIDAndTest(questionID, testID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("question %d does not belong to test %d", questionID, testID)
		}
		return nil, err
	}

	selected, err := s.optionRepo.FindByIDAndQuestion(selectedOptionID, question.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.Validation("option %d does not belong to question %d", selectedOptionID, question.ID)
		}
		return nil, err
	}

	correctOptions, err := s.optionRepo.FindCorrectByQuestionID(question.ID)
	if err != nil {
		return nil, err
	}
	if len(correctOptions) != 1 {
		log.Error().Uint("questionID", question.ID).Int("correctCount", len(correctOptions)).
			Msg("SubmitAnswer: question does not have exactly one correct option")
		return nil, apperr.AmbiguousCorrectAnswer(
			"question %d has %d options flagged correct, expected exactly 1", question.ID, len(correctOptions))
	}
	correct := correctOptions[0]

	// Resolve the response message before touching the ledger: a correct
	// option whose stored name cannot be decoded must reject the whole
	// submission, not leave a row behind.
	score := 0
	message := "Correct answer"
	if selected.IsCorrect {
		score = 1
	} else {
		label, decodeErr := DecodeOptionLabel(correct.Name, correct.ID)
		if decodeErr != nil {
			return nil, decodeErr
		}
		message = fmt.Sprintf("AMAI!\nCorrect option: %s", label)
	}

	submission := model.UserTestSubmission{
		UserID:                 userID,
		TestID:                 testID,
		QuestionID:             question.ID,
		SelectedOptionID:       selected.ID,
		Score:                  score,
		LastAnsweredQuestionID: &question.ID,
	}

	switch s.resubmitPolicy {
	case config.ResubmitAppend:
		err = s.submissionRepo.Create(&submission)
	default:
		err = s.submissionRepo.Upsert(&submission)
	}
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("questionID", question.ID).
			Msg("SubmitAnswer: failed to persist submission")
		return nil, err
	}

	return &dto.SubmitAnswerResponse{Success: true, Message: message}, nil
}

// Reset clears every pending submission for the caller, across all tests.
func (s *submissionService) Reset(userID uint) error {
	return s.submissionRepo.DeleteByUser(userID)
}
