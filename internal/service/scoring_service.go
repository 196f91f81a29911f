package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hmiyake/classquiz/config"
	"github.com/hmiyake/classquiz/internal/apperr"
	"github.com/hmiyake/classquiz/internal/dto"
	"github.com/hmiyake/classquiz/internal/model"
	"github.com/hmiyake/classquiz/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ScoringService owns the session state machine: a session opens for a
// (user, test) pair, finalize aggregates the pending ledger rows into
// permanent records and purges the rows it consumed, all as one atomic unit.
type ScoringService interface {
	StartSession(userID uint, username string, testID uint) (*dto.SessionResponse, error)
	FinalizeTest(userID uint, username string, testID uint) (*dto.FinalizeResponse, error)
}

type scoringService struct {
	testRepo       repository.TestRepository
	sessionRepo    repository.SessionRepository
	submissionRepo repository.SubmissionRepository
	recordRepo     repository.RecordRepository
	resubmitPolicy string
	db             *gorm.DB
}

func NewScoringService(
	testRepo repository.TestRepository,
	sessionRepo repository.SessionRepository,
	submissionRepo repository.SubmissionRepository,
	recordRepo repository.RecordRepository,
	cfg *config.Config,
	db *gorm.DB,
) ScoringService {
	return &scoringService{
		testRepo:       testRepo,
		sessionRepo:    sessionRepo,
		submissionRepo: submissionRepo,
		recordRepo:     recordRepo,
		resubmitPolicy: cfg.Scoring.ResubmitPolicy,
		db:             db,
	}
}

// StartSession opens a session for (user, test). A second open session for
// the same pair is rejected so two clients cannot race each other into a
// double finalize.
func (s *scoringService) StartSession(userID uint, username string, testID uint) (*dto.SessionResponse, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("test not found with ID %d", testID)
		}
		return nil, err
	}

	if _, err := s.sessionRepo.FindOpenByUserAndTest(userID, testID); err == nil {
		return nil, apperr.Conflict("an open session already exists for user %d and test %d", userID, testID)
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	session := model.Session{
		SessionName: test.Name,
		User:        username,
		UserID:      userID,
		Number:      testID,
		Status:      model.SessionStatusOpen,
		Timestamp:   time.Now().Truncate(time.Minute),
	}
	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("testID", testID).Msg("StartSession: failed to create session")
		return nil, err
	}

	return sessionToDTO(&session), nil
}

// FinalizeTest aggregates all pending submissions for (user, test) into
// permanent records sharing one group id, writes the total record, deletes
// the consumed rows and closes the session. Everything past the existence
// check runs in a single transaction guarded by an advisory lock on the
// (user, test) pair; a concurrent finalize on the same pair is rejected
// instead of double counting.
func (s *scoringService) FinalizeTest(userID uint, username string, testID uint) (*dto.FinalizeResponse, error) {
	test, err := s.testRepo.FindByID(testID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("test not found with ID %d", testID)
		}
		return nil, err
	}

	groupID := uuid.NewString()
	var totalScore int
	var recordIDs []uint

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var locked bool
		if err := tx.Raw("SELECT pg_try_advisory_xact_lock(?)", advisoryLockKey(userID, testID)).Scan(&locked).Error; err != nil {
			return err
		}
		if !locked {
			return apperr.Conflict("another finalize is in progress for user %d and test %d", userID, testID)
		}

		var session model.Session
		err := tx.Where("user_id = ? AND number = ? AND status = ?", userID, testID, model.SessionStatusOpen).
			Order("id DESC").First(&session).Error
		if err == gorm.ErrRecordNotFound {
			// One-shot flow: the record endpoint may be called without an
			// explicit start, in which case the session opens here.
			session = model.Session{
				SessionName: test.Name,
				User:        username,
				UserID:      userID,
				Number:      testID,
				Status:      model.SessionStatusOpen,
				Timestamp:   time.Now().Truncate(time.Minute),
			}
			if err := s.sessionRepo.CreateTx(tx, &session); err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		pending, err := s.submissionRepo.FindPendingForUpdate(tx, userID, testID)
		if err != nil {
			return err
		}

		effective := effectiveSubmissions(pending, s.resubmitPolicy)

		questionNames, optionNames, err := snapshotNames(tx, testID, effective)
		if err != nil {
			return err
		}

		records, total := buildRecords(effective, questionNames, optionNames, recordContext{
			UserID:    userID,
			TestID:    testID,
			GroupID:   groupID,
			SessionID: session.ID,
		})
		totalScore = total

		if err := s.recordRepo.CreateAll(tx, records); err != nil {
			return err
		}
		recordIDs = recordIDs[:0]
		for _, rec := range records {
			recordIDs = append(recordIDs, rec.ID)
		}

		// Purge every consumed row, including duplicates the policy skipped.
		consumed := make([]uint, 0, len(pending))
		for _, sub := range pending {
			consumed = append(consumed, sub.ID)
		}
		if err := s.submissionRepo.DeleteByIDs(tx, consumed); err != nil {
			return err
		}

		return s.sessionRepo.MarkFinalized(tx, session.ID)
	})
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("testID", testID).Msg("FinalizeTest: transaction failed")
		return nil, err
	}

	return &dto.FinalizeResponse{
		Success:   true,
		Message:   fmt.Sprintf("Total score: %d/%d!", totalScore, test.TotalQuestions),
		RecordIDs: recordIDs,
	}, nil
}

// advisoryLockKey packs (user, test) into the single-bigint advisory lock
// keyspace: user id in the high 32 bits, test id in the low 32. Distinct
// pairs below 2^32 never collide, which the two-int32 overload could not
// guarantee for ids past 2^31.
func advisoryLockKey(userID, testID uint) int64 {
	return int64(uint64(userID)<<32 | uint64(testID)&0xffffffff)
}

// effectiveSubmissions applies the resubmit policy to the pending rows. With
// the upsert policy the ledger already holds one row per question; with the
// append policy the latest submission per question wins. Input must be in
// creation order.
func effectiveSubmissions(pending []model.UserTestSubmission, policy string) []model.UserTestSubmission {
	if policy != config.ResubmitAppend {
		return pending
	}
	latest := make(map[uint]int, len(pending))
	for i, sub := range pending {
		latest[sub.QuestionID] = i
	}
	out := make([]model.UserTestSubmission, 0, len(latest))
	for i, sub := range pending {
		if latest[sub.QuestionID] == i {
			out = append(out, sub)
		}
	}
	return out
}

type recordContext struct {
	UserID    uint
	TestID    uint
	GroupID   string
	SessionID uint
}

// buildRecords produces one per-question record per submission, with names
// snapshotted by value, plus the trailing total record. Returns the records
// and the total score.
func buildRecords(
	subs []model.UserTestSubmission,
	questionNames map[uint]string,
	optionNames map[uint]string,
	rc recordContext,
) ([]model.TestRecord, int) {
	records := make([]model.TestRecord, 0, len(subs)+1)
	total := 0

	for _, sub := range subs {
		score := sub.Score
		questionID := sub.QuestionID
		records = append(records, model.TestRecord{
			UserID:             rc.UserID,
			TestID:             rc.TestID,
			QuestionID:         &questionID,
			QuestionName:       questionNames[sub.QuestionID],
			SelectedOptionName: optionNames[sub.SelectedOptionID],
			RecordedScore:      &score,
			GroupID:            rc.GroupID,
			SessionID:          rc.SessionID,
		})
		total += sub.Score
	}

	totalScore := total
	records = append(records, model.TestRecord{
		UserID:             rc.UserID,
		TestID:             rc.TestID,
		TotalRecordedScore: &totalScore,
		GroupID:            rc.GroupID,
		SessionID:          rc.SessionID,
	})

	return records, total
}

// snapshotNames loads the question and option names referenced by the
// effective submissions so records carry copies, not references.
func snapshotNames(tx *gorm.DB, testID uint, subs []model.UserTestSubmission) (map[uint]string, map[uint]string, error) {
	questionNames := make(map[uint]string)
	optionNames := make(map[uint]string)
	if len(subs) == 0 {
		return questionNames, optionNames, nil
	}

	var questions []model.Question
	if err := tx.Where("test_id = ?", testID).Find(&questions).Error; err != nil {
		return nil, nil, err
	}
	for _, q := range questions {
		questionNames[q.ID] = q.Name
	}

	optionIDs := make([]uint, 0, len(subs))
	for _, sub := range subs {
		optionIDs = append(optionIDs, sub.SelectedOptionID)
	}
	var options []model.Option
	if err := tx.Find(&options, optionIDs).Error; err != nil {
		return nil, nil, err
	}
	for _, opt := range options {
		optionNames[opt.ID] = opt.Name
	}

	return questionNames, optionNames, nil
}

func sessionToDTO(session *model.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		ID:          session.ID,
		SessionName: session.SessionName,
		User:        session.User,
		Number:      session.Number,
		Status:      session.Status,
		Timestamp:   session.Timestamp,
	}
}
