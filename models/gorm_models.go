// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormCard 卡牌表模型
type GormCard struct {
	gorm.Model
	CardID     string `gorm:"uniqueIndex;not null"`
	Word       string `gorm:"uniqueIndex;not null"`
	Forbidden  string `gorm:"type:jsonb;not null"` // 五个禁用词，JSON数组
	Category   string `gorm:"index;default:''"`
	Difficulty string `gorm:"default:'normal'"`
}

// TableName 固定表名，与 lib/pq 实现共用同一张表
func (GormCard) TableName() string {
	return "cards"
}
