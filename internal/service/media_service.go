package service

import (
	"github.com/hmiyake/classquiz/internal/apperr"
	"github.com/hmiyake/classquiz/internal/repository"
	"gorm.io/gorm"
)

// MediaService streams the blobs stored alongside content entities. The
// contract is the blob-store shape the rest of the system expects: given an
// entity id, (content-type, bytes) or NotFound.
type MediaService interface {
	SchoolPicture(id uint) (string, []byte, error)
	ClassroomPicture(id uint) (string, []byte, error)
	TestPicture(id uint) (string, []byte, error)
	QuestionPicture(id uint) (string, []byte, error)
	QuestionAudio(id uint) (string, []byte, error)
	OptionPicture(id uint) (string, []byte, error)
}

type mediaService struct {
	schoolRepo    repository.SchoolRepository
	classroomRepo repository.ClassroomRepository
	testRepo      repository.TestRepository
	questionRepo  repository.QuestionRepository
	optionRepo    repository.OptionRepository
}

func NewMediaService(
	schoolRepo repository.SchoolRepository,
	classroomRepo repository.ClassroomRepository,
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
) MediaService {
	return &mediaService{
		schoolRepo:    schoolRepo,
		classroomRepo: classroomRepo,
		testRepo:      testRepo,
		questionRepo:  questionRepo,
		optionRepo:    optionRepo,
	}
}

func blob(contentType string, data []byte, entity string, id uint, err error) (string, []byte, error) {
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", nil, apperr.NotFound("%s not found with ID %d", entity, id)
		}
		return "", nil, err
	}
	if len(data) == 0 {
		return "", nil, apperr.NotFound("%s %d has no stored blob", entity, id)
	}
	return contentType, data, nil
}

func (s *mediaService) SchoolPicture(id uint) (string, []byte, error) {
	school, err := s.schoolRepo.FindByID(id)
	if err != nil {
		return blob("", nil, "school", id, err)
	}
	return blob(school.PictureContentType, school.Picture, "school", id, nil)
}

func (s *mediaService) ClassroomPicture(id uint) (string, []byte, error) {
	classroom, err := s.classroomRepo.FindByID(id)
	if err != nil {
		return blob("", nil, "classroom", id, err)
	}
	return blob(classroom.PictureContentType, classroom.Picture, "classroom", id, nil)
}

func (s *mediaService) TestPicture(id uint) (string, []byte, error) {
	test, err := s.testRepo.FindByID(id)
	if err != nil {
		return blob("", nil, "test", id, err)
	}
	return blob(test.PictureContentType, test.Picture, "test", id, nil)
}

func (s *mediaService) QuestionPicture(id uint) (string, []byte, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return blob("", nil, "question", id, err)
	}
	return blob(question.PictureContentType, question.Picture, "question", id, nil)
}

func (s *mediaService) QuestionAudio(id uint) (string, []byte, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		return blob("", nil, "question", id, err)
	}
	return blob(question.AudioContentType, question.Audio, "question", id, nil)
}

func (s *mediaService) OptionPicture(id uint) (string, []byte, error) {
	option, err := s.optionRepo.FindByID(id)
	if err != nil {
		return blob("", nil, "option", id, err)
	}
	return blob(option.PictureContentType, option.Picture, "option", id, nil)
}
