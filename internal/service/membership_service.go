package service

import (
	"github.com/hmiyake/classquiz/internal/apperr"
	"github.com/hmiyake/classquiz/internal/dto"
	"github.com/hmiyake/classquiz/internal/model"
	"github.com/hmiyake/classquiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// MembershipService enforces the join-by-password semantics: students enroll
// in classrooms, teachers associate with schools. Passwords are compared by
// exact match; the identity provider owns actual authentication.
type MembershipService interface {
	JoinClassroom(userID uint, req dto.JoinClassroomRequest) (*dto.ClassroomResponse, error)
	JoinSchool(userID uint, req dto.JoinSchoolRequest) (*dto.SchoolResponse, error)
	MyClassrooms(userID uint) ([]dto.ClassroomResponse, error)
}

type membershipService struct {
	schoolRepo     repository.SchoolRepository
	classroomRepo  repository.ClassroomRepository
	membershipRepo repository.MembershipRepository
}

func NewMembershipService(
	schoolRepo repository.SchoolRepository,
	classroomRepo repository.ClassroomRepository,
	membershipRepo repository.MembershipRepository,
) MembershipService {
	return &membershipService{
		schoolRepo:     schoolRepo,
		classroomRepo:  classroomRepo,
		membershipRepo: membershipRepo,
	}
}

func (s *membershipService) JoinClassroom(userID uint, req dto.JoinClassroomRequest) (*dto.ClassroomResponse, error) {
	classroom, err := s.classroomRepo.FindByName(req.ClassroomName)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("classroom not found: %s", req.ClassroomName)
		}
		return nil, err
	}
	if classroom.Password != req.ClassroomPassword {
		return nil, apperr.Validation("invalid classroom password")
	}

	student, err := s.membershipRepo.GetOrCreateStudent(userID)
	if err != nil {
		return nil, err
	}
	if err := s.classroomRepo.AddStudent(classroom, student); err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("classroomID", classroom.ID).Msg("JoinClassroom: enrollment failed")
		return nil, err
	}

	return classroomToDTO(classroom), nil
}

// JoinSchool associates a teacher with a school; both the school name and
// password must match exactly.
func (s *membershipService) JoinSchool(userID uint, req dto.JoinSchoolRequest) (*dto.SchoolResponse, error) {
	school, err := s.schoolRepo.FindByNameAndPassword(req.SchoolName, req.SchoolPassword)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.Validation("invalid school name or password")
		}
		return nil, err
	}

	if _, err := s.membershipRepo.FindTeacherByUserID(userID); err == nil {
		return nil, apperr.Conflict("user %d is already associated with a school", userID)
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	teacher := model.Teacher{UserID: userID, SchoolID: school.ID}
	if err := s.membershipRepo.CreateTeacher(&teacher); err != nil {
		return nil, err
	}

	return &dto.SchoolResponse{ID: school.ID, Name: school.Name, CreatedAt: school.CreatedAt}, nil
}

// MyClassrooms resolves the caller as a student first, then as a teacher,
// mirroring the original my-classroom lookup.
func (s *membershipService) MyClassrooms(userID uint) ([]dto.ClassroomResponse, error) {
	var classrooms []model.Classroom

	student, err := s.membershipRepo.FindStudentByUserID(userID)
	switch {
	case err == nil:
		classrooms, err = s.classroomRepo.FindByStudentID(student.ID)
		if err != nil {
			return nil, err
		}
	case err == gorm.ErrRecordNotFound:
		teacher, terr := s.membershipRepo.FindTeacherByUserID(userID)
		if terr == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("user is not associated with any student or teacher")
		}
		if terr != nil {
			return nil, terr
		}
		classrooms, err = s.classroomRepo.FindByTeacherID(teacher.ID)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if len(classrooms) == 0 {
		return nil, apperr.NotFound("no classrooms associated with this user")
	}

	out := make([]dto.ClassroomResponse, 0, len(classrooms))
	for i := range classrooms {
		out = append(out, *classroomToDTO(&classrooms[i]))
	}
	return out, nil
}

func classroomToDTO(classroom *model.Classroom) *dto.ClassroomResponse {
	return &dto.ClassroomResponse{
		ID:        classroom.ID,
		Name:      classroom.Name,
		SchoolID:  classroom.SchoolID,
		TeacherID: classroom.TeacherID,
		CreatedAt: classroom.CreatedAt,
	}
}
