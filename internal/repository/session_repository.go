package repository

import (
	"github.com/hmiyake/classquiz/internal/model"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(session *model.Session) error
	CreateTx(tx *gorm.DB, session *model.Session) error
	FindOpenByUserAndTest(userID, testID uint) (*model.Session, error)
	MarkFinalized(tx *gorm.DB, id uint) error
	FindByIDs(ids []uint) ([]model.Session, error)
	FindByUser(userID uint) ([]model.Session, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.Session) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) CreateTx(tx *gorm.DB, session *model.Session) error {
	return tx.Create(session).Error
}

func (r *sessionRepository) FindOpenByUserAndTest(userID, testID uint) (*model.Session, error) {
	var session model.Session
	err := r.db.
		Where("user_id = ? AND number = ? AND status = ?", userID, testID, model.SessionStatusOpen).
		Order("id DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) MarkFinalized(tx *gorm.DB, id uint) error {
	return tx.Model(&model.Session{}).Where("id = ?", id).Update("status", model.SessionStatusFinalized).Error
}

func (r *sessionRepository) FindByIDs(ids []uint) ([]model.Session, error) {
	var sessions []model.Session
	if len(ids) == 0 {
		return sessions, nil
	}
	err := r.db.Where("id IN ?", ids).Order("timestamp DESC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) FindByUser(userID uint) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.Where("user_id = ?", userID).Order("timestamp DESC").Find(&sessions).Error
	return sessions, err
}
