package service

import (
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/hmiyake/classquiz/internal/dto"
	"github.com/hmiyake/classquiz/internal/model"
	"github.com/hmiyake/classquiz/internal/repository"
)

// RecordQueryService is the read-only projection layer for dashboards.
// Sessions are reached through the records they produced, so a session with
// no records yet (opened but never finalized) only shows up in the caller's
// own session list.
type RecordQueryService interface {
	Sessions(testID, userID *uint, callerID uint) ([]dto.SessionResponse, error)
	MyRecords(userID uint) ([]dto.TestRecordResponse, error)
	RecordsByGroup(groupID string) ([]dto.TestRecordResponse, error)
}

type recordQueryService struct {
	recordRepo  repository.RecordRepository
	sessionRepo repository.SessionRepository
}

func NewRecordQueryService(recordRepo repository.RecordRepository, sessionRepo repository.SessionRepository) RecordQueryService {
	return &recordQueryService{recordRepo: recordRepo, sessionRepo: sessionRepo}
}

func (s *recordQueryService) Sessions(testID, userID *uint, callerID uint) ([]dto.SessionResponse, error) {
	var (
		sessions []model.Session
		err      error
	)

	switch {
	case testID != nil && userID != nil:
		var ids []uint
		ids, err = s.recordRepo.DistinctSessionIDsByTestAndUser(*testID, *userID)
		if err == nil {
			sessions, err = s.sessionRepo.FindByIDs(ids)
		}
	case testID != nil:
		var ids []uint
		ids, err = s.recordRepo.DistinctSessionIDsByTest(*testID)
		if err == nil {
			sessions, err = s.sessionRepo.FindByIDs(ids)
		}
	default:
		sessions, err = s.sessionRepo.FindByUser(callerID)
	}
	if err != nil {
		log.Error().Err(err).Msg("Sessions: repository error")
		return nil, err
	}

	out := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *sessionToDTO(&sessions[i]))
	}
	return out, nil
}

func (s *recordQueryService) MyRecords(userID uint) ([]dto.TestRecordResponse, error) {
	records, err := s.recordRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	return recordsToDTO(records)
}

func (s *recordQueryService) RecordsByGroup(groupID string) ([]dto.TestRecordResponse, error) {
	records, err := s.recordRepo.FindByGroupID(groupID)
	if err != nil {
		return nil, err
	}
	return recordsToDTO(records)
}

func recordsToDTO(records []model.TestRecord) ([]dto.TestRecordResponse, error) {
	out := make([]dto.TestRecordResponse, 0, len(records))
	for i := range records {
		var resp dto.TestRecordResponse
		if err := copier.Copy(&resp, &records[i]); err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}
