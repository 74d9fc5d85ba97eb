package database

import (
	"time"

	"oshilog/models"

	"gorm.io/gorm"
)

// Store service.Store 的 gorm 实现，全部查询按 user_id 限定行级可见性：
// owner 不匹配时只会得到空结果，绝不返回其他用户的数据
type Store struct {
	db *gorm.DB
}

// NewStore 创建存储读取器。db 为 nil 时使用全局连接（每次调用时取，
// 以便测试中替换 database.DB）
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn() *gorm.DB {
	if s.db != nil {
		return s.db
	}
	return DB
}

// OwnerExists 判断用户是否存在
func (s *Store) OwnerExists(owner uint) (bool, error) {
	var count int64
	if err := s.conn().Model(&models.User{}).Where("id = ?", owner).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// RecurringRules 取用户全部定期规则
func (s *Store) RecurringRules(owner uint) ([]models.RecurringTransaction, error) {
	var rules []models.RecurringTransaction
	err := s.conn().Where("user_id = ?", owner).Order("id").Find(&rules).Error
	return rules, err
}

// TransactionsInRange 取窗口内的实记录
func (s *Store) TransactionsInRange(owner uint, from, to time.Time) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := s.conn().
		Where("user_id = ? AND date >= ? AND date <= ?", owner, from, to).
		Order("date DESC, id").
		Find(&transactions).Error
	return transactions, err
}

// ScheduledInRange 取窗口内的预定收支
func (s *Store) ScheduledInRange(owner uint, from, to time.Time) ([]models.ScheduledTransaction, error) {
	var scheduled []models.ScheduledTransaction
	err := s.conn().
		Where("user_id = ? AND scheduled_date >= ? AND scheduled_date <= ?", owner, from, to).
		Order("scheduled_date DESC, id").
		Find(&scheduled).Error
	return scheduled, err
}
