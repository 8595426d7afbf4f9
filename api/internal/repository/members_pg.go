package repository

import (
	"paygate/api/internal/domain"

	"gorm.io/gorm"
)

type MembersRepo struct {
}

func InitMembersRepo() *MembersRepo {
	return &MembersRepo{}
}

func (r *MembersRepo) FindByUID(tx *gorm.DB, uid string) (*domain.Members, error) {
	var member domain.Members
	return &member, tx.Where(&domain.Members{UID: uid}).First(&member).Error
}

func (r *MembersRepo) Exists(tx *gorm.DB, uid string) (bool, error) {
	var count int64
	err := tx.Model(&domain.Members{}).Where(&domain.Members{UID: uid}).Count(&count).Error
	return count > 0, err
}
