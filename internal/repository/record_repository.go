package repository

import (
	"github.com/hmiyake/classquiz/internal/model"
	"gorm.io/gorm"
)

type RecordRepository interface {
	CreateAll(tx *gorm.DB, records []model.TestRecord) error
	FindByUser(userID uint) ([]model.TestRecord, error)
	FindByGroupID(groupID string) ([]model.TestRecord, error)
	DistinctSessionIDsByTest(testID uint) ([]uint, error)
	DistinctSessionIDsByTestAndUser(testID, userID uint) ([]uint, error)
}

type recordRepository struct {
	db *gorm.DB
}

func NewRecordRepository(db *gorm.DB) RecordRepository {
	return &recordRepository{db: db}
}

func (r *recordRepository) CreateAll(tx *gorm.DB, records []model.TestRecord) error {
	if len(records) == 0 {
		return nil
	}
	return tx.Create(&records).Error
}

func (r *recordRepository) FindByUser(userID uint) ([]model.TestRecord, error) {
	var records []model.TestRecord
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&records).Error
	return records, err
}

func (r *recordRepository) FindByGroupID(groupID string) ([]model.TestRecord, error) {
	var records []model.TestRecord
	err := r.db.Where("group_id = ?", groupID).Order("id ASC").Find(&records).Error
	return records, err
}

func (r *recordRepository) DistinctSessionIDsByTest(testID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.TestRecord{}).
		Distinct("session_id").
		Where("test_id = ?", testID).
		Pluck("session_id", &ids).Error
	return ids, err
}

func (r *recordRepository) DistinctSessionIDsByTestAndUser(testID, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.TestRecord{}).
		Distinct("session_id").
		Where("test_id = ? AND user_id = ?", testID, userID).
		Pluck("session_id", &ids).Error
	return ids, err
}
