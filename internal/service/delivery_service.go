package service

import (
	"math/rand"
	"strconv"

	"github.com/hmiyake/classquiz/internal/apperr"
	"github.com/hmiyake/classquiz/internal/dto"
	"github.com/hmiyake/classquiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DeliveryService renders tests for taking: a classroom's test list,
// questions in a fresh uniform shuffle on every request, and options in
// stored order with their display labels decoded.
type DeliveryService interface {
	GetClassroomTests(classroomID uint) ([]dto.TestResponse, error)
	GetShuffledQuestions(testID uint) ([]dto.DeliveredQuestion, error)
	GetOptions(questionID uint) ([]dto.DeliveredOption, error)
}

type deliveryService struct {
	testRepo      repository.TestRepository
	questionRepo  repository.QuestionRepository
	optionRepo    repository.OptionRepository
	classroomRepo repository.ClassroomRepository
}

func NewDeliveryService(
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	classroomRepo repository.ClassroomRepository,
) DeliveryService {
	return &deliveryService{
		testRepo:      testRepo,
		questionRepo:  questionRepo,
		optionRepo:    optionRepo,
		classroomRepo: classroomRepo,
	}
}

// GetClassroomTests lists the tests assigned to a classroom, the entry point
// a student uses after joining.
func (s *deliveryService) GetClassroomTests(classroomID uint) ([]dto.TestResponse, error) {
	if _, err := s.classroomRepo.FindByID(classroomID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("classroom not found with ID %d", classroomID)
		}
		return nil, err
	}

	tests, err := s.testRepo.FindByClassroomID(classroomID)
	if err != nil {
		log.Error().Err(err).Uint("classroomID", classroomID).Msg("GetClassroomTests: repository error")
		return nil, err
	}

	out := make([]dto.TestResponse, 0, len(tests))
	for _, t := range tests {
		out = append(out, dto.TestResponse{
			ID:             t.ID,
			Name:           t.Name,
			TotalQuestions: t.TotalQuestions,
			CreatedAt:      t.CreatedAt,
		})
	}
	return out, nil
}

// DecodeOptionLabel strips the decimal id the content layer appended to the
// stored option name. A name too short to contain both a label and the id
// suffix fails loudly instead of producing a garbled or empty label.
func DecodeOptionLabel(name string, id uint) (string, error) {
	digits := len(strconv.FormatUint(uint64(id), 10))
	if len(name) <= digits {
		return "", apperr.LabelDecode("option %d: stored name %q too short to strip %d-digit id suffix", id, name, digits)
	}
	return name[:len(name)-digits], nil
}

func (s *deliveryService) GetShuffledQuestions(testID uint) ([]dto.DeliveredQuestion, error) {
	test, err := s.testRepo.FindByIDWithQuestions(testID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("test not found with ID %d", testID)
		}
		log.Error().Err(err).Uint("testID", testID).Msg("GetShuffledQuestions: repository error")
		return nil, err
	}
	questions := test.Questions

	// Fresh shuffle per request: the ordering is never persisted and never
	// seeded deterministically.
	rand.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})

	out := make([]dto.DeliveredQuestion, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.DeliveredQuestion{
			ID:         q.ID,
			TestID:     q.TestID,
			Name:       q.Name,
			HasPicture: len(q.Picture) > 0,
			HasAudio:   len(q.Audio) > 0,
		})
	}
	return out, nil
}

// GetOptions intentionally returns the stored order. Only the whole-page
// initial load of the original client shuffled options, and it did so
// independently of questions; the per-question fetch never did.
func (s *deliveryService) GetOptions(questionID uint) ([]dto.DeliveredOption, error) {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("question not found with ID %d", questionID)
		}
		return nil, err
	}

	options, err := s.optionRepo.FindByQuestionID(questionID)
	if err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("GetOptions: repository error")
		return nil, err
	}

	out := make([]dto.DeliveredOption, 0, len(options))
	for _, opt := range options {
		label, err := DecodeOptionLabel(opt.Name, opt.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.DeliveredOption{
			ID:         opt.ID,
			QuestionID: opt.QuestionID,
			Label:      label,
			HasPicture: len(opt.Picture) > 0,
		})
	}
	return out, nil
}
