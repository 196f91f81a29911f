package repository

import (
	"github.com/hmiyake/classquiz/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionRepository interface {
	Create(submission *model.UserTestSubmission) error
	// Upsert overwrites the existing row for (user, test, question) if one
	// exists, otherwise inserts.
	Upsert(submission *model.UserTestSubmission) error
	FindPendingByUserAndTest(userID, testID uint) ([]model.UserTestSubmission, error)
	// FindPendingForUpdate locks the pending rows for the duration of the
	// surrounding transaction.
	FindPendingForUpdate(tx *gorm.DB, userID, testID uint) ([]model.UserTestSubmission, error)
	DeleteByIDs(tx *gorm.DB, ids []uint) error
	DeleteByUser(userID uint) error
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.UserTestSubmission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) Upsert(submission *model.UserTestSubmission) error {
	var existing model.UserTestSubmission
	err := r.db.
		Where("user_id = ? AND test_id = ? AND question_id = ?",
			submission.UserID, submission.TestID, submission.QuestionID).
		First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return r.db.Create(submission).Error
	}
	if err != nil {
		return err
	}
	submission.ID = existing.ID
	submission.CreatedAt = existing.CreatedAt
	return r.db.Save(submission).Error
}

func (r *submissionRepository) FindPendingByUserAndTest(userID, testID uint) ([]model.UserTestSubmission, error) {
	var submissions []model.UserTestSubmission
	err := r.db.
		Where("user_id = ? AND test_id = ?", userID, testID).
		Order("created_at ASC, id ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) FindPendingForUpdate(tx *gorm.DB, userID, testID uint) ([]model.UserTestSubmission, error) {
	var submissions []model.UserTestSubmission
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ? AND test_id = ?", userID, testID).
		Order("created_at ASC, id ASC").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepository) DeleteByIDs(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return tx.Delete(&model.UserTestSubmission{}, ids).Error
}

func (r *submissionRepository) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.UserTestSubmission{}).Error
}
