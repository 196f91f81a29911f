package service

import (
	"strconv"

	"github.com/hmiyake/classquiz/internal/apperr"
	"github.com/hmiyake/classquiz/internal/dto"
	"github.com/hmiyake/classquiz/internal/model"
	"github.com/hmiyake/classquiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ContentService is the admin CRUD surface for the containment hierarchy
// School → Classroom → Test → Question → Option. Deletes cascade downward;
// Test.TotalQuestions is recomputed on every question create/delete.
type ContentService interface {
	CreateSchool(req dto.CreateSchoolRequest, picture *dto.Upload) (*dto.SchoolResponse, error)
	DeleteSchool(id uint) error
	CreateClassroom(schoolID, teacherUserID uint, req dto.CreateClassroomRequest, picture *dto.Upload) (*dto.ClassroomResponse, error)
	DeleteClassroom(id uint) error
	CreateTest(classroomID uint, req dto.CreateTestRequest, picture *dto.Upload) (*dto.TestResponse, error)
	AttachTestToClassroom(testID, classroomID uint) error
	DeleteTest(id uint) error
	CreateQuestion(testID uint, req dto.CreateQuestionRequest, picture, audio *dto.Upload) (*dto.QuestionResponse, error)
	DeleteQuestion(id uint) error
	CreateOption(questionID uint, req dto.CreateOptionRequest, picture *dto.Upload) (*dto.OptionResponse, error)
	DeleteOption(id uint) error
}

type contentService struct {
	schoolRepo     repository.SchoolRepository
	classroomRepo  repository.ClassroomRepository
	testRepo       repository.TestRepository
	questionRepo   repository.QuestionRepository
	optionRepo     repository.OptionRepository
	membershipRepo repository.MembershipRepository
}

func NewContentService(
	schoolRepo repository.SchoolRepository,
	classroomRepo repository.ClassroomRepository,
	testRepo repository.TestRepository,
	questionRepo repository.QuestionRepository,
	optionRepo repository.OptionRepository,
	membershipRepo repository.MembershipRepository,
) ContentService {
	return &contentService{
		schoolRepo:     schoolRepo,
		classroomRepo:  classroomRepo,
		testRepo:       testRepo,
		questionRepo:   questionRepo,
		optionRepo:     optionRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *contentService) CreateSchool(req dto.CreateSchoolRequest, picture *dto.Upload) (*dto.SchoolResponse, error) {
	school := model.School{Name: req.Name, Password: req.Password}
	if picture != nil {
		school.Picture = picture.Data
		school.PictureContentType = picture.ContentType
	}
	if err := s.schoolRepo.Create(&school); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateSchool: repository error")
		return nil, err
	}
	return &dto.SchoolResponse{ID: school.ID, Name: school.Name, CreatedAt: school.CreatedAt}, nil
}

func (s *contentService) DeleteSchool(id uint) error {
	if _, err := s.schoolRepo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("school not found with ID %d", id)
		}
		return err
	}
	return s.schoolRepo.Delete(id)
}

func (s *contentService) CreateClassroom(schoolID, teacherUserID uint, req dto.CreateClassroomRequest, picture *dto.Upload) (*dto.ClassroomResponse, error) {
	if _, err := s.schoolRepo.FindByID(schoolID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("school not found with ID %d", schoolID)
		}
		return nil, err
	}
	teacher, err := s.membershipRepo.FindTeacherByUserID(teacherUserID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.Validation("user %d is not associated with any school as a teacher", teacherUserID)
		}
		return nil, err
	}

	classroom := model.Classroom{
		Name:      req.Name,
		Password:  req.Password,
		SchoolID:  schoolID,
		TeacherID: teacher.ID,
	}
	if picture != nil {
		classroom.Picture = picture.Data
		classroom.PictureContentType = picture.ContentType
	}
	if err := s.classroomRepo.Create(&classroom); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateClassroom: repository error")
		return nil, err
	}
	return &dto.ClassroomResponse{
		ID: classroom.ID, Name: classroom.Name,
		SchoolID: classroom.SchoolID, TeacherID: classroom.TeacherID,
		CreatedAt: classroom.CreatedAt,
	}, nil
}

func (s *contentService) DeleteClassroom(id uint) error {
	if _, err := s.classroomRepo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("classroom not found with ID %d", id)
		}
		return err
	}
	return s.classroomRepo.Delete(id)
}

func (s *contentService) CreateTest(classroomID uint, req dto.CreateTestRequest, picture *dto.Upload) (*dto.TestResponse, error) {
	classroom, err := s.classroomRepo.FindByID(classroomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("classroom not found with ID %d", classroomID)
		}
		return nil, err
	}

	test := model.Test{Name: req.Name}
	if picture != nil {
		test.Picture = picture.Data
		test.PictureContentType = picture.ContentType
	}
	if err := s.testRepo.Create(&test); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateTest: repository error")
		return nil, err
	}
	if err := s.classroomRepo.AttachTest(classroom, &test); err != nil {
		return nil, err
	}
	return &dto.TestResponse{ID: test.ID, Name: test.Name, TotalQuestions: test.TotalQuestions, CreatedAt: test.CreatedAt}, nil
}

// AttachTestToClassroom links an existing test to an additional classroom;
// one test can be assigned to several classrooms.
func (s *contentService) AttachTestToClassroom(testID, classroomID uint) error {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("test not found with ID %d", testID)
		}
		return err
	}
	classroom, err := s.classroomRepo.FindByID(classroomID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("classroom not found with ID %d", classroomID)
		}
		return err
	}
	return s.classroomRepo.AttachTest(classroom, test)
}

func (s *contentService) DeleteTest(id uint) error {
	if _, err := s.testRepo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("test not found with ID %d", id)
		}
		return err
	}
	return s.testRepo.Delete(id)
}

func (s *contentService) CreateQuestion(testID uint, req dto.CreateQuestionRequest, picture, audio *dto.Upload) (*dto.QuestionResponse, error) {
	if _, err := s.testRepo.FindByID(testID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("test not found with ID %d", testID)
		}
		return nil, err
	}

	question := model.Question{TestID: testID, Name: req.Name}
	if picture != nil {
		question.Picture = picture.Data
		question.PictureContentType = picture.ContentType
	}
	if audio != nil {
		question.Audio = audio.Data
		question.AudioContentType = audio.ContentType
	}
	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateQuestion: repository error")
		return nil, err
	}
	if err := s.recountQuestions(testID); err != nil {
		return nil, err
	}
	return &dto.QuestionResponse{ID: question.ID, TestID: question.TestID, Name: question.Name, CreatedAt: question.CreatedAt}, nil
}

func (s *contentService) DeleteQuestion(id uint) error {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("question not found with ID %d", id)
		}
		return err
	}
	if err := s.questionRepo.Delete(id); err != nil {
		return err
	}
	return s.recountQuestions(question.TestID)
}

// CreateOption persists the row first, then rewrites the stored name with
// the new id appended. The suffix is what DecodeOptionLabel strips on
// delivery, so label+suffix always round-trips.
func (s *contentService) CreateOption(questionID uint, req dto.CreateOptionRequest, picture *dto.Upload) (*dto.OptionResponse, error) {
	if _, err := s.questionRepo.FindByID(questionID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("question not found with ID %d", questionID)
		}
		return nil, err
	}

	option := model.Option{QuestionID: questionID, Name: req.Name, IsCorrect: req.IsCorrect}
	if picture != nil {
		option.Picture = picture.Data
		option.PictureContentType = picture.ContentType
	}
	if err := s.optionRepo.Create(&option); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("CreateOption: repository error")
		return nil, err
	}

	encoded := req.Name + strconv.FormatUint(uint64(option.ID), 10)
	if err := s.optionRepo.UpdateName(option.ID, encoded); err != nil {
		return nil, err
	}
	option.Name = encoded

	return &dto.OptionResponse{ID: option.ID, QuestionID: option.QuestionID, Name: option.Name, IsCorrect: option.IsCorrect}, nil
}

func (s *contentService) DeleteOption(id uint) error {
	if _, err := s.optionRepo.FindByID(id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return apperr.NotFound("option not found with ID %d", id)
		}
		return err
	}
	return s.optionRepo.Delete(id)
}

func (s *contentService) recountQuestions(testID uint) error {
	count, err := s.questionRepo.CountByTestID(testID)
	if err != nil {
		return err
	}
	return s.testRepo.UpdateTotalQuestions(testID, int(count))
}
